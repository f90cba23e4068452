package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/shareit/internal/config"
)

func newLimitedEcho(t *testing.T, cfg config.RateLimitConfig) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := echo.New()
	e.Use(NewRateLimiter(cfg, rdb))
	e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e, mr
}

func hit(e *echo.Echo, userID string) int {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if userID != "" {
		req.Header.Set(UserHeader, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter(t *testing.T) {
	// a long window keeps all hits of a subtest inside one counting bucket
	cfg := config.RateLimitConfig{Enabled: true, Limit: 3, Window: time.Hour, Prefix: "rl"}

	t.Run("throttles after the limit", func(t *testing.T) {
		e, _ := newLimitedEcho(t, cfg)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hit(e, "1"))
		}
		assert.Equal(t, http.StatusTooManyRequests, hit(e, "1"))
	})

	t.Run("callers are counted independently", func(t *testing.T) {
		e, _ := newLimitedEcho(t, cfg)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hit(e, "1"))
		}
		assert.Equal(t, http.StatusTooManyRequests, hit(e, "1"))
		assert.Equal(t, http.StatusOK, hit(e, "2"))
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		e, _ := newLimitedEcho(t, config.RateLimitConfig{Enabled: false})
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, hit(e, "1"))
		}
	})

	t.Run("nil client passes everything through", func(t *testing.T) {
		e := echo.New()
		e.Use(NewRateLimiter(cfg, nil))
		e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, hit(e, "1"))
		}
	})
}
