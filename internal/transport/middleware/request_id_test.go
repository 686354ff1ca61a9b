package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/qaza-tracker/pkg/ctxutil"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	t.Parallel()
	ctxID, headerID := serveRequestID(t, "client-chosen-id")

	assert.Equal(t, "client-chosen-id", ctxID)
	assert.Equal(t, "client-chosen-id", headerID)
}

func TestRequestID_GenerateNew(t *testing.T) {
	t.Parallel()
	ctxID, headerID := serveRequestID(t, "")

	assert.Equal(t, ctxID, headerID)
	_, err := uuid.Parse(headerID)
	assert.NoError(t, err)
}

func TestRequestID_OversizedIncomingReplaced(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", maxRequestIDLen+1)
	ctxID, headerID := serveRequestID(t, long)

	assert.NotEqual(t, long, ctxID)
	_, err := uuid.Parse(headerID)
	assert.NoError(t, err)
}
