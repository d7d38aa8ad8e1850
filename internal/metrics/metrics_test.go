package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(m *Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/book/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
	return router
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()
	router := setupRouter(m)

	for _, path := range []string{"/book/bok-1", "/book/bok-2", "/nowhere"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/book/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", unmatchedRoute, "404")))
}

func TestHandler_ExposesCatalogMetrics(t *testing.T) {
	m := New()
	router := setupRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/book/bok-1", nil))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "catalog_http_requests_total"))
	assert.True(t, strings.Contains(body, "catalog_http_request_duration_seconds"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	first := New()
	second := New()

	first.requests.WithLabelValues("GET", "/", "200").Inc()

	assert.Equal(t, float64(0), testutil.ToFloat64(second.requests.WithLabelValues("GET", "/", "200")))
}
