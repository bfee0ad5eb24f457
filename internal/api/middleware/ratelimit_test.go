package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/phrazzld/tasker-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(t *testing.T, cfg RateLimiterConfig) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Stop)
	return rl
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter_AllowsRequestsWithinBurst(t *testing.T) {
	rl := newTestRateLimiter(t, RateLimiterConfig{Rate: 1, Burst: 5, CleanupInterval: time.Minute})

	calls := 0
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestFrom("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, rr.Code, "request %d", i)
	}
	assert.Equal(t, 5, calls)
}

func TestRateLimiter_Returns429WhenLimitExceeded(t *testing.T) {
	rl := newTestRateLimiter(t, PerMinute(6, 2))

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestFrom("10.0.0.2:5000"))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestFrom("10.0.0.2:6000"))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	retryAfter, err := strconv.Atoi(rr.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Equal(t, 10, retryAfter, "6 per minute refills one token every 10 seconds")

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := newTestRateLimiter(t, RateLimiterConfig{Rate: 0.01, Burst: 1, CleanupInterval: time.Minute})

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.3:1", "10.0.0.4:1"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestFrom(addr))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, 2, rl.LimiterCount())
}

func TestRateLimiter_CleanupRemovesIdleEntries(t *testing.T) {
	rl := newTestRateLimiter(t, RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute})

	rl.limiterFor("10.0.0.5")
	require.Equal(t, 1, rl.LimiterCount())

	rl.cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, 1, rl.LimiterCount(), "entry within ttl is kept")

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.LimiterCount())
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(PerMinute(60, 1))
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
