package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/shop-backend/internal/adapter/handler"
	"github.com/rl1809/shop-backend/internal/adapter/storage"
	"github.com/rl1809/shop-backend/internal/config"
	"github.com/rl1809/shop-backend/internal/core/service"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MongoDB
	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer connectCancel()

	client, err := storage.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect mongodb")
	}
	log.Info("connected to mongodb")

	db := client.Database(cfg.DatabaseName)
	if err := storage.EnsureIndexes(connectCtx, db); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	log.Info("indexes ensured")

	// Initialize adapters and services
	productAdapter := storage.NewMongoProductAdapter(db)
	orderAdapter := storage.NewMongoOrderAdapter(db)
	catalogService := service.NewCatalogService(productAdapter)
	orderService := service.NewOrderService(productAdapter, orderAdapter)

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(catalogService, orderService)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Router(),
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
	log.Info("HTTP server stopped")

	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("mongodb disconnect error")
	}
	log.Info("connections closed")
}
