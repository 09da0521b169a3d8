package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"contacts/internal/adapters/httpclient"
	"contacts/internal/adapters/postgres"
	"contacts/internal/api"
	"contacts/internal/config"
	"contacts/internal/contact"
	"contacts/internal/contact/handler"
	"contacts/internal/currency"
	"contacts/internal/platform/db"
	httpserver "contacts/internal/platform/http"

	"github.com/sirupsen/logrus"
)

const (
	startupTimeout           = 10 * time.Second
	defaultHTTPClientTimeout = 10 * time.Second
)

// Run wires the application components and serves HTTP until SIGINT or SIGTERM.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	setupLogger(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB connect and schema bootstrap
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.ApplySchema(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Failed to apply schema")
		return err
	}
	logrus.Info("✅ Contacts schema ready")

	// Rate provider
	if appCfg.RatesAPI.APIKey == "" {
		return errors.New("rates api key is required")
	}
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = defaultHTTPClientTimeout
	}
	rateClient := httpclient.NewHGBrasilClient(
		&http.Client{Timeout: httpTimeout},
		strings.TrimSuffix(appCfg.RatesAPI.BaseURL, "/"),
		appCfg.RatesAPI.APIKey,
	)
	converter := currency.NewConverter(rateClient, time.Duration(appCfg.RatesAPI.LookupTimeoutSeconds)*time.Second)

	// Contacts
	contactRepo := postgres.NewContactRepository(pool)
	contactService := contact.NewService(contactRepo, converter)
	contactHandler := handler.NewContactHandler(contactService)
	router := api.NewRouter(contactHandler, appCfg.CORS.AllowedOrigins)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		logrus.WithError(serverErr).Error("HTTP server error")
		return serverErr
	}
	logrus.Info("HTTP server stopped")
	return nil
}

func setupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
