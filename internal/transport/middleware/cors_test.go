package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/qaza-tracker/internal/config"
)

func corsConfig(origins string, creds bool) config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   "GET,POST,OPTIONS",
		AllowedHeaders:   "Content-Type,X-Request-Id",
		AllowCredentials: creds,
		MaxAge:           86400,
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/exec", nil)
	req.Header.Set("Origin", "https://qaza.example")
	rec := httptest.NewRecorder()
	CORS(corsConfig("https://qaza.example", true))(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://qaza.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,X-Request-Id", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_Origins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		allowed   string
		creds     bool
		origin    string
		wantAllow string
		wantCreds string
	}{
		{"listed origin", "https://a.example, https://b.example", true, "https://b.example", "https://b.example", "true"},
		{"unlisted origin", "https://a.example", true, "https://evil.example", "", ""},
		{"wildcard without credentials", "*", false, "https://any.example", "https://any.example", ""},
		{"no origin header", "*", true, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/exec", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(corsConfig(tt.allowed, tt.creds))(handler).ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
