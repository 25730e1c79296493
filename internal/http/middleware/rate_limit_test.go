package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rentloft/rentloft-api/internal/http/middleware"
)

func TestRateLimiterFailsOpen(t *testing.T) {
	// Nothing listens here: every redis call errors out.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	rl := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
	})

	handler := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jwt", nil))
		require.Equal(t, http.StatusOK, rec.Code, "limiter must fail open when redis is unreachable")
	}
}
