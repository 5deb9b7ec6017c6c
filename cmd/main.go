package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-relay/internal/adapter/linegateway"
	"order-relay/internal/adapter/logger"
	"order-relay/internal/adapter/memory"
	"order-relay/internal/app/admin"
	"order-relay/internal/app/order"
	"order-relay/internal/app/router"
	"order-relay/internal/config"

	httpAdapter "order-relay/internal/adapter/http"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional; env vars override)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Initialize logger
	lgr := logger.New("order-relay")

	// Application state lives in memory for the lifetime of the process.
	store := memory.NewStore()
	if cfg.Admin.ConversationID != "" {
		store.SetAdminConversation(cfg.Admin.ConversationID)
		lgr.Info("admin_configured", "Admin conversation set from config", "startup", map[string]any{
			"conversation_id": cfg.Admin.ConversationID,
		})
	}

	// Messaging gateway client
	gateway := linegateway.NewClient(cfg.Gateway)

	// Initialize services
	orderService := order.NewService(gateway, store, store, store, store, lgr, cfg.Shift.RolloverHour)
	adminService := admin.NewService(gateway, store, store, store, lgr)
	eventRouter := router.NewService(orderService, adminService, store, lgr)

	// Initialize HTTP handler
	webhookHandler := httpAdapter.NewWebhookHandler(eventRouter, lgr)

	// Setup HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", webhookHandler.HandleWebhook)

	// Apply middleware
	handler := httpAdapter.SignatureMiddleware(cfg.Gateway.ChannelSecret, lgr)(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Order relay started on port %d", cfg.Server.Port), "startup", map[string]any{
		"port":          cfg.Server.Port,
		"rollover_hour": cfg.Shift.RolloverHour,
	})

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down order relay", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}
