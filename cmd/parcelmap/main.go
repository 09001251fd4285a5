package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/parcel-balance-map/internal/adapter/feed"
	"github.com/couchcryptid/parcel-balance-map/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/parcel-balance-map/internal/adapter/kafka"
	"github.com/couchcryptid/parcel-balance-map/internal/adapter/sheets"
	"github.com/couchcryptid/parcel-balance-map/internal/config"
	"github.com/couchcryptid/parcel-balance-map/internal/loader"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
	"github.com/couchcryptid/parcel-balance-map/internal/presentation"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Balance source: the Sheets API when a spreadsheet id is set, else the CSV feed.
	var source loader.CSVSource
	if cfg.SheetsEnabled() {
		client, err := sheets.NewClient(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsRange, logger,
			option.WithCredentialsFile(cfg.SheetsCredentialsFile))
		if err != nil {
			logger.Error("failed to create sheets client", "error", err)
			os.Exit(1)
		}
		source = client
		logger.Info("balance source: sheets api", "range", cfg.SheetsRange)
	} else {
		source = feed.NewClient(cfg.FeedURL, cfg.FeedCharset, cfg.FetchTimeout, logger)
		logger.Info("balance source: csv feed", "charset", cfg.FeedCharset)
	}

	var (
		publisher loader.SnapshotPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	app := presentation.NewApp(presentation.NewCachedScale(cfg.ColorCacheSize, metrics))
	shapes := feed.NewShapeSource(cfg.MapSVG, cfg.FetchTimeout, logger)
	l := loader.New(source, shapes, publisher, app, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, app, l, l, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial load. Failures leave the map uncolored until POST /api/reload succeeds.
	if err := l.Load(ctx).Err(); err != nil {
		logger.Warn("initial load incomplete", "error", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
