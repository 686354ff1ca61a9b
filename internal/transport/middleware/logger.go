package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/qaza-tracker/pkg/ctxutil"
)

// Logger logs each HTTP request with its status, duration and request ID.
// Handlers report the identifier they acted on through SetIdentifier.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			holder := &identifierHolder{}
			r = r.WithContext(withIdentifierHolder(r.Context(), holder))

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			requestID := ctxutil.RequestIDFromCtx(r.Context())

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", duration),
				slog.String("request_id", requestID),
			}
			if holder.id != "" {
				attrs = append(attrs, slog.String("identifier", holder.id))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

type holderKey struct{}

// identifierHolder lets an inner handler report the identifier it acted on
// back to the logger, which only sees the outer request.
type identifierHolder struct {
	id string
}

func withIdentifierHolder(ctx context.Context, h *identifierHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// SetIdentifier records the identifier for the request log line. It is a
// no-op outside the Logger middleware.
func SetIdentifier(ctx context.Context, id string) {
	if h, ok := ctx.Value(holderKey{}).(*identifierHolder); ok {
		h.id = id
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
