package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	return r
}

func get(r http.Handler, ip, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_Generated(t *testing.T) {
	w := get(newEngine(RequestID()), "10.0.0.1", "")
	require.Equal(t, http.StatusOK, w.Code)

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, id, w.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	w := get(newEngine(RequestID()), "10.0.0.1", "abc-123")
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, "abc-123", w.Body.String())
}

func TestNewRateLimiter_Disabled(t *testing.T) {
	require.Nil(t, NewRateLimiter(0, 10))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }
	r := newEngine(RequestID(), rl.Limit())

	require.Equal(t, http.StatusOK, get(r, "10.0.0.1", "").Code)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.1", "").Code)
	w := get(r, "10.0.0.1", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())

	// Another client has its own bucket.
	require.Equal(t, http.StatusOK, get(r, "10.0.0.2", "").Code)

	// Tokens refill with time.
	now = now.Add(time.Second)
	require.Equal(t, http.StatusOK, get(r, "10.0.0.1", "").Code)
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	rl.getVisitor("a")
	rl.getVisitor("b")
	require.Equal(t, 2, rl.size())

	now = now.Add(visitorTTL + time.Second)
	rl.getVisitor("c")
	require.Equal(t, 1, rl.size())
}
