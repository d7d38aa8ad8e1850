package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/locallibrary/catalog/internal/config"
	"github.com/locallibrary/catalog/internal/database"
	"github.com/locallibrary/catalog/internal/database/authors"
	"github.com/locallibrary/catalog/internal/database/bookinstances"
	"github.com/locallibrary/catalog/internal/database/books"
	"github.com/locallibrary/catalog/internal/database/genres"
	http_controllers "github.com/locallibrary/catalog/internal/http"
	"github.com/locallibrary/catalog/internal/metrics"
	"github.com/locallibrary/catalog/internal/session"
)

const csrfSecretLength = 32

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting catalog v%s", version)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessions, err := session.New(sqlDB, session.Options{
		Lifetime:      cfg.Security.SessionLifetime,
		SecureCookies: cfg.Security.SecureCookies,
	})
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, err := resolveCSRFSecret(cfg.Security.CSRFSecret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	if cfg.Security.CSRFSecret == "" {
		log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
	}

	routerCfg := http_controllers.RouterConfig{
		Stores: http_controllers.Stores{
			Authors:   authors.NewRepository(db.DB),
			Genres:    genres.NewRepository(db.DB),
			Books:     books.NewRepository(db.DB),
			Instances: bookinstances.NewRepository(db.DB),
		},
		Database:      db,
		Sessions:      sessions,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Security.SecureCookies,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metrics.New()
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		sessions.Close()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}

// resolveCSRFSecret decodes a configured secret, falling back to its raw
// bytes when it is not hex. An empty value yields a random secret.
func resolveCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		secret, err := hex.DecodeString(configured)
		if err != nil {
			return []byte(configured), nil
		}
		return secret, nil
	}

	secret := make([]byte, csrfSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}
