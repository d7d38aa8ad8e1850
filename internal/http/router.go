package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}

	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before sessions so the session context survives
	// CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
		router.Use(FlashMiddleware(cfg.Sessions))
	}

	router.Use(ErrorHandler())

	tmpl := template.Must(template.New("").Funcs(TemplateFuncs()).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	registerCatalogRoutes(router, cfg.Stores)

	return router
}

// registerCatalogRoutes mounts the catalog pages. Static segments such as
// /book/create sit beside /book/:id, which gin resolves in favour of the
// static segment.
func registerCatalogRoutes(router *gin.Engine, stores Stores) {
	catalog := NewCatalogController(stores)
	authors := NewAuthorsController(stores.Authors, stores.Books)
	genres := NewGenresController(stores.Genres, stores.Books)
	books := NewBooksController(stores.Books, stores.Authors, stores.Genres, stores.Instances)
	instances := NewBookInstancesController(stores.Instances, stores.Books)

	router.GET("/", catalog.Index)

	router.GET("/authors", authors.List)
	router.GET("/author/create", authors.CreateForm)
	router.POST("/author/create", authors.Create)
	router.GET("/author/:id", authors.Detail)
	router.GET("/author/:id/update", authors.UpdateForm)
	router.POST("/author/:id/update", authors.Update)
	router.GET("/author/:id/delete", authors.DeleteForm)
	router.POST("/author/:id/delete", authors.Delete)

	router.GET("/genres", genres.List)
	router.GET("/genre/create", genres.CreateForm)
	router.POST("/genre/create", genres.Create)
	router.GET("/genre/:id", genres.Detail)
	router.GET("/genre/:id/update", genres.UpdateForm)
	router.POST("/genre/:id/update", genres.Update)
	router.GET("/genre/:id/delete", genres.DeleteForm)
	router.POST("/genre/:id/delete", genres.Delete)

	router.GET("/books", books.List)
	router.GET("/book/create", books.CreateForm)
	router.POST("/book/create", books.Create)
	router.GET("/book/:id", books.Detail)
	router.GET("/book/:id/update", books.UpdateForm)
	router.POST("/book/:id/update", books.Update)
	router.GET("/book/:id/delete", books.DeleteForm)
	router.POST("/book/:id/delete", books.Delete)

	router.GET("/bookinstances", instances.List)
	router.GET("/bookinstance/create", instances.CreateForm)
	router.POST("/bookinstance/create", instances.Create)
	router.GET("/bookinstance/:id", instances.Detail)
	router.GET("/bookinstance/:id/update", instances.UpdateForm)
	router.POST("/bookinstance/:id/update", instances.Update)
	router.GET("/bookinstance/:id/delete", instances.DeleteForm)
	router.POST("/bookinstance/:id/delete", instances.Delete)

	router.NoRoute(notFound)
}
