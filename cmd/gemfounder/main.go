package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/wKayaa/gemfounder/internal/alerts"
	"github.com/wKayaa/gemfounder/internal/coingecko"
	"github.com/wKayaa/gemfounder/internal/config"
	"github.com/wKayaa/gemfounder/internal/dexscreener"
	"github.com/wKayaa/gemfounder/internal/metrics"
	"github.com/wKayaa/gemfounder/internal/scanner"
	"github.com/wKayaa/gemfounder/internal/storage"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	log.Info("Starting gemfounder service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	log.WithFields(logrus.Fields{
		"environment":       cfg.Environment,
		"risk_profile":      cfg.RiskProfile,
		"chains":            strings.Join(cfg.Chains, ","),
		"scan_interval_sec": cfg.ScanIntervalSec,
		"alert_mode":        cfg.AlertMode,
	}).Info("Configuration loaded")

	// Initialize database
	db, err := storage.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	log.Info("Database connected")

	// Run auto-migration
	if err := db.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("Failed to run database migrations")
	}

	log.Info("Database migrations complete")

	// Initialize API clients
	dexClient := dexscreener.NewClient(cfg)
	geckoClient := coingecko.NewClient(cfg)

	log.Info("API clients initialized")

	// Initialize alert sender
	alertSender := createAlertSender(cfg, log)

	log.WithField("alert_mode", cfg.AlertMode).Info("Alert sender initialized")

	// Initialize scanner
	scan, err := scanner.New(cfg, db, dexClient, geckoClient, alertSender, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build scanner")
	}

	// Start HTTP server (health + metrics)
	go startHTTPServer(cfg.HealthPort, log)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start scan loop
	ticker := time.NewTicker(time.Duration(cfg.ScanIntervalSec) * time.Second)
	defer ticker.Stop()

	// Daily notification cleanup ticker
	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	log.Info("Starting scan loop")

	scan.LogStartupState(ctx)

	// Scan immediately on startup
	if err := scan.Scan(ctx); err != nil {
		log.WithError(err).Error("Error running scan cycle")
	}

	for {
		select {
		case <-ticker.C:
			if err := scan.Scan(ctx); err != nil {
				log.WithError(err).Error("Error running scan cycle")
			}
		case <-cleanupTicker.C:
			scan.Cleanup(ctx)
		case sig := <-sigChan:
			log.WithField("signal", sig).Info("Received shutdown signal")
			cancel()
			log.Info("Graceful shutdown complete")
			return
		case <-ctx.Done():
			log.Info("Context cancelled, shutting down")
			return
		}
	}
}

func createAlertSender(cfg *config.Config, log *logrus.Logger) alerts.Sender {
	// Parse comma-separated alert modes
	modes := strings.Split(cfg.AlertMode, ",")
	for i, mode := range modes {
		modes[i] = strings.TrimSpace(mode)
	}

	senders := []alerts.Sender{}

	for _, mode := range modes {
		switch mode {
		case "log":
			senders = append(senders, alerts.NewLogSender(log))
		case "telegram":
			if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
				senders = append(senders, alerts.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID))
			} else {
				log.Warn("Telegram mode specified but bot token or chat ID not set")
			}
		case "discord":
			if cfg.DiscordWebURL != "" {
				senders = append(senders, alerts.NewDiscordSender(cfg.DiscordWebURL))
			} else {
				log.Warn("Discord mode specified but DISCORD_WEBHOOK_URL not set")
			}
		default:
			log.WithField("mode", mode).Warn("Unknown alert mode, skipping")
		}
	}

	if len(senders) == 0 {
		log.Warn("No valid alert senders configured, using log")
		return alerts.NewLogSender(log)
	}
	if len(senders) == 1 {
		return senders[0]
	}

	return alerts.NewMultiSender(senders...)
}

func startHTTPServer(port int, log *logrus.Logger) {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordHealthCheck(true)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy"}`)
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordHealthCheck(true)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ready"}`)
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	log.WithField("port", port).Info("Starting HTTP server (health + metrics)")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("HTTP server failed")
	}
}
