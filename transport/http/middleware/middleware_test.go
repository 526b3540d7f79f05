package middleware_test

import (
	"errors"
	"listo/config"
	"listo/infras/otel/mocks"
	"listo/shared/cache"
	cacheMocks "listo/shared/cache/mocks"
	"listo/shared/constant"
	"listo/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache), mockCache
}

func TestRequestID(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	var seen string

	handler := mw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/all", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/all", nil)
		req.Header.Set(constant.RequestHeaderRequestID, "abc-123")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(constant.RequestHeaderRequestID))
	})
}

func TestLoggerAndTracingPassThrough(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	handler := mw.Logger(mw.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/all", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	t.Run("first request in window", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/all", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				*(value.(*int)) = 2

				return nil
			})

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/all", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/all", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health is never limited", func(t *testing.T) {
		mw, _ := newMiddleware(t, cfg)

		rec := httptest.NewRecorder()
		mw.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
