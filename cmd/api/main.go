package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medingen/recon_api/internal/config"
	"github.com/medingen/recon_api/internal/handler"
	"github.com/medingen/recon_api/internal/ingest"
	"github.com/medingen/recon_api/internal/middleware"
	"github.com/medingen/recon_api/internal/service"
	"github.com/medingen/recon_api/pkg/catalog"
)

// The concrete client must satisfy the gateway contract the services use.
var _ service.CatalogGateway = (*catalog.Client)(nil)

// main is the application entrypoint for the reconciliation API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting recon api")

	// 3. Initialize catalog client
	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
	})

	// 4. Initialize services
	rowStore := service.NewRowStore()
	ingestor := ingest.NewIngestor()
	authSvc := service.NewAuthService(cfg.Operator, cfg.JWTSecret)
	reconcileSvc := service.NewReconcileService(catalogClient, ingestor, rowStore)
	sessionSvc := service.NewMatchSessionService(catalogClient, rowStore)
	catalogSvc := service.NewCatalogService(catalogClient)

	// 5. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(catalogClient),
		Auth:      handler.NewAuthHandler(authSvc),
		Reconcile: handler.NewReconcileHandler(reconcileSvc),
		Session:   handler.NewSessionHandler(sessionSvc),
		Product:   handler.NewProductHandler(catalogSvc),
	}

	// 6. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Reconcile *handler.ReconcileHandler
	Session   *handler.SessionHandler
	Product   *handler.ProductHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Catalog grid routes (protected)
	catalogGroup := router.Group("/v1/catalog")
	catalogGroup.Use(jwtMiddleware.Handle())
	{
		catalogGroup.GET("/products", handlers.Product.GetProducts)
		catalogGroup.GET("/products/search", handlers.Product.SearchProducts)
		catalogGroup.POST("/products", handlers.Product.CreateProduct)
		catalogGroup.PUT("/products/:id/field", handlers.Product.EditField)
		catalogGroup.DELETE("/products/:id", handlers.Product.DeleteProduct)
		catalogGroup.POST("/products/:id/unmatch", handlers.Product.UnmatchProduct)
		catalogGroup.GET("/export", handlers.Product.ExportProducts)
	}

	// Bulk reconciliation routes (protected)
	reconcile := router.Group("/v1/reconcile")
	reconcile.Use(jwtMiddleware.Handle())
	{
		reconcile.POST("/upload", handlers.Reconcile.Upload)
		reconcile.GET("/rows", handlers.Reconcile.GetRows)
		reconcile.POST("/automatch", handlers.Reconcile.AutoMatch)
		reconcile.GET("/rows/export", handlers.Reconcile.ExportRows)

		reconcile.POST("/sessions", handlers.Session.Open)
		reconcile.POST("/sessions/:id/search", handlers.Session.Search)
		reconcile.POST("/sessions/:id/approve", handlers.Session.Approve)
		reconcile.DELETE("/sessions/:id", handlers.Session.Close)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
