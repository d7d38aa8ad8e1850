package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetricsCollector records request metrics and serves them.
type MetricsCollector interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog stores
	Stores Stores

	// Database is pinged by /health.
	Database Pinger

	// Sessions carries flash messages; nil disables them.
	Sessions Sessions

	// CSRF protection is enabled when the secret is set.
	CSRFSecret    []byte
	SecureCookies bool

	// Metrics is optional; /metrics is only registered when set.
	Metrics MetricsCollector

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
