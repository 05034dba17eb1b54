// cmd/server/main.go
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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/database"
	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/middleware"
	"github.com/javajoker/delivery-storefront/internal/router"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	configureLogging(cfg.Log)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize cart storage
	store, db, err := openStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize cart storage")
	}
	if db != nil {
		defer database.Close(db)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog := services.NewCatalogService(cfg.Catalog, nil, cfg.I18n.DefaultLocale)
	sessions := services.NewSessionManager(store, cfg.Storefront, cfg.I18n.DefaultLocale)
	defer sessions.Close()
	catalog.OnRefresh(func(services.CatalogSnapshot) { sessions.ResetCategories() })

	limiters := middleware.NewLimiters(cfg.RateLimit)
	defer limiters.Stop()

	if cfg.Catalog.RefreshOnStart {
		go func() {
			// Failures are kept on the catalog state and shown by the menu.
			catalog.Refresh(context.Background())
		}()
	}

	// Initialize router
	r := router.Initialize(cfg, catalog, sessions, limiters)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return
	}

	logrus.Info("Server exited")
}

func configureLogging(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// openStore builds the key/value store cart snapshots are mirrored to. The
// returned *gorm.DB is nil unless a database driver is configured.
func openStore(cfg *config.Config) (storage.KeyValueStore, *gorm.DB, error) {
	switch {
	case cfg.Database.UsesDatabase():
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		if cfg.Storefront.CartRetention > 0 {
			purged, err := database.PurgeStale(db, time.Now().Add(-cfg.Storefront.CartRetention))
			if err != nil {
				logrus.WithError(err).Warn("Failed to purge stale carts")
			} else if purged > 0 {
				logrus.WithField("purged", purged).Info("Purged stale carts")
			}
		}
		return storage.NewGormStore(db), db, nil

	case cfg.Database.Driver == config.DriverS3:
		store, err := storage.NewS3Store(cfg.AWS)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	default:
		logrus.Warn("Using in-memory cart storage; carts are lost on restart")
		return storage.NewMemoryStore(), nil, nil
	}
}
