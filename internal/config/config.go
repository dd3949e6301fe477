package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/appfuel/purchasekit/internal/models"
	"github.com/joho/godotenv"
)

type Config struct {
	PostgresDSN     string
	RedisAddr       string
	KafkaBrokers    []string
	EventTopic      string
	StoreBackendURL string
	JWTSecret       string
	Paywall         models.PaywallConfig
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBrokers:    []string{os.Getenv("KAFKA_BROKER")},
		EventTopic:      os.Getenv("EVENT_TOPIC"),
		StoreBackendURL: os.Getenv("STORE_BACKEND_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		Paywall: models.PaywallConfig{
			AutomaticallyDismiss:           os.Getenv("AUTOMATICALLY_DISMISS") != "false",
			ShouldShowPurchaseFailureAlert: os.Getenv("SHOW_PURCHASE_FAILURE_ALERT") != "false",
			RestoreFailed: models.AlertCopy{
				Title:      envOr("RESTORE_FAILED_TITLE", "No Subscription Found"),
				Message:    envOr("RESTORE_FAILED_MESSAGE", "We couldn't find an active subscription for your account."),
				CloseLabel: envOr("RESTORE_FAILED_CLOSE_LABEL", "Okay"),
			},
		},
	}

	if triggers := os.Getenv("ACTIVE_TRIGGERS"); triggers != "" {
		cfg.Paywall.Triggers = strings.Split(triggers, ",")
	}

	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = "host=localhost user=postgres password=postgres dbname=purchases sslmode=disable"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if len(cfg.KafkaBrokers) == 1 && cfg.KafkaBrokers[0] == "" {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}
	if cfg.EventTopic == "" {
		cfg.EventTopic = "purchase-events"
	}
	if cfg.StoreBackendURL == "" {
		cfg.StoreBackendURL = "http://localhost:8081"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "supersecret"
	}

	slog.Info("config loaded",
		"postgres_dsn", cfg.PostgresDSN,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"event_topic", cfg.EventTopic,
		"store_backend_url", cfg.StoreBackendURL)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
