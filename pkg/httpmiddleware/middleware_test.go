package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWrap_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Wrap(okHandler(), mw("outer"), mw("middle"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// The first listed middleware is the outermost.
	assert.Equal(t, []string{"outer", "middle", "inner"}, order)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var got string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, got)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	var got string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", got)
	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
}

func TestRequestID_RejectsInvalidHeader(t *testing.T) {
	h := RequestID()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad\x01id")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	echoed := rec.Header().Get("X-Request-ID")
	require.NotEqual(t, "bad\x01id", echoed)
	_, err := uuid.Parse(echoed)
	require.NoError(t, err)
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 2, Window: time.Minute})(okHandler())

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := do()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code": 429, "message": "rate limit exceeded"}`, third.Body.String())
}

func TestRateLimit_KeysAreIndependent(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}

func TestRateLimit_WindowExpiry(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})
	now := time.Now()

	_, _, allowed := rl.allow("k", now)
	require.True(t, allowed)
	_, _, allowed = rl.allow("k", now)
	require.False(t, allowed)

	// A fresh window opens once the old one has fully elapsed.
	_, _, allowed = rl.allow("k", now.Add(time.Minute))
	require.True(t, allowed)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})
	now := time.Now()

	rl.allow("stale", now)
	rl.allow("fresh", now.Add(30*time.Second))

	rl.cleanup(now.Add(time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.windows, "stale")
	assert.Contains(t, rl.windows, "fresh")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "192.168.1.5:4321",
			want:       "192.168.1.5",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain uses first hop",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 70.41.3.18"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
