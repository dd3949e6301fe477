package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appfuel/purchasekit/internal/api"
	"github.com/appfuel/purchasekit/internal/config"
	"github.com/appfuel/purchasekit/internal/coordinator"
	"github.com/appfuel/purchasekit/internal/handler"
	"github.com/appfuel/purchasekit/internal/infrastructure/kafka"
	"github.com/appfuel/purchasekit/internal/infrastructure/redis"
	"github.com/appfuel/purchasekit/internal/infrastructure/storeclient"
	"github.com/appfuel/purchasekit/internal/observability"
	repository "github.com/appfuel/purchasekit/internal/repository/postgres"
	service "github.com/appfuel/purchasekit/internal/services"
	"github.com/appfuel/purchasekit/internal/tracking"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	shutdown := observability.Setup("purchase-orchestrator")
	defer shutdown(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	transactionRepo := repository.NewPostgresTransactionRepository(db)
	redisClient := redis.NewClient(cfg.RedisAddr)
	defer redisClient.Close()

	eventQueue := kafka.NewEventQueue(cfg.KafkaBrokers, cfg.EventTopic)
	defer eventQueue.Close()
	tracker := tracking.NewTracker(eventQueue)

	store := storeclient.NewClient(cfg.StoreBackendURL)
	purchaseCoordinator := coordinator.New(redisClient, transactionRepo)
	products := redis.NewProductStore(redisClient)
	purchased := redis.NewPurchasedProducts(redisClient, transactionRepo)
	entitlements := redis.NewEntitlementReader(redisClient)

	restoreService := service.NewRestoreService(store, nil, entitlements, tracker, nil, cfg.Paywall)
	purchaseService := service.NewPurchaseService(
		products,
		store,
		service.NewRoutingBackend(store, nil),
		purchaseCoordinator,
		purchased,
		restoreService,
		tracker,
		nil,
		cfg.Paywall,
	)

	h := handler.NewHandler(purchaseService, restoreService, products)
	router := api.SetupRouter(h, redisClient, cfg.JWTSecret)

	server := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}
	go func() {
		log.Printf("Starting server on :8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
