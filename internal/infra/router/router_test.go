package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/internal/app/middleware"
	"github.com/hollowpress/hollow-press/internal/pkg/auth"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	search_handler "github.com/hollowpress/hollow-press/pkg/handler/search"
	"github.com/hollowpress/hollow-press/pkg/idgen"
	"github.com/hollowpress/hollow-press/pkg/service/search"
)

var secret = []byte("router-secret")

func newEngine(t *testing.T, rl RateLimit) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("router-test"))

	ref, err := search.NewReferenceSource()
	require.NoError(t, err)
	registry, err := search.NewRegistry(ref)
	require.NoError(t, err)

	svc := search.NewSearchService(registry, nil, search.Options{})
	engine := gin.New()
	NewRouter(search_handler.NewHandler(svc), middleware.NewMiddleware(secret), rl).Setup(engine)
	return engine
}

func get(engine http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	engine := newEngine(t, RateLimit{RequestsPerMinute: 600, Burst: 100})

	t.Run("公开搜索", func(t *testing.T) {
		w := get(engine, "/api/search?q=privacy", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

		var env model.SearchEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.NotContains(t, env.Meta.Types, model.CategoryAccount)
		assert.Greater(t, env.Meta.Total, 0)
	})

	t.Run("输入联想", func(t *testing.T) {
		w := get(engine, "/api/search/suggest?q=pr", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "suggestions")
	})

	t.Run("热门词需要登录", func(t *testing.T) {
		w := get(engine, "/api/admin/search/trending", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("普通用户无法查看热门词", func(t *testing.T) {
		token, err := auth.GenerateToken(5, 2, secret, time.Hour)
		require.NoError(t, err)
		w := get(engine, "/api/admin/search/trending", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理员查看热门词", func(t *testing.T) {
		token, err := auth.GenerateToken(1, model.AdminUserGroupID, secret, time.Hour)
		require.NoError(t, err)
		w := get(engine, "/api/admin/search/trending", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "privacy")
	})

	t.Run("指标端点", func(t *testing.T) {
		w := get(engine, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "hollowpress_search_requests_total")
	})
}

func TestSearchRateLimit(t *testing.T) {
	engine := newEngine(t, RateLimit{RequestsPerMinute: 1, Burst: 1})

	assert.Equal(t, http.StatusOK, get(engine, "/api/search?q=privacy", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(engine, "/api/search?q=privacy", "").Code)
	// 管理接口不受搜索限流影响
	assert.Equal(t, http.StatusUnauthorized, get(engine, "/api/admin/search/trending", "").Code)
}
