package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "modernc.org/sqlite"

	httpadapter "github.com/skylabs-meteo/forecast-analytics/internal/adapter/http"
	kafkaadapter "github.com/skylabs-meteo/forecast-analytics/internal/adapter/kafka"
	"github.com/skylabs-meteo/forecast-analytics/internal/alert"
	"github.com/skylabs-meteo/forecast-analytics/internal/config"
	"github.com/skylabs-meteo/forecast-analytics/internal/model"
	"github.com/skylabs-meteo/forecast-analytics/internal/modelstore"
	"github.com/skylabs-meteo/forecast-analytics/internal/observability"
	"github.com/skylabs-meteo/forecast-analytics/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, closeStore, err := openModelStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open model store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	predictor, err := model.NewTrendPredictor(store)
	if err != nil {
		logger.Error("failed to initialize trend predictor", "error", err)
		os.Exit(1)
	}
	status := predictor.Status()
	logger.Info("trend predictor ready",
		"trained", status.Trained, "samples", status.Samples)

	engine := alert.NewEngine()
	engine.SetThresholds(alert.Overrides{
		ExtremeHeatC: cfg.AlertExtremeHeatC,
		FreezingC:    cfg.AlertFreezingC,
		HighWindMS:   cfg.AlertHighWindMS,
		HeavyRainMMH: cfg.AlertHeavyRainMMH,
	})

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	analyzer := pipeline.NewAnalyzer(predictor, engine, cfg.PredictHorizonDays, logger, metrics)

	p := pipeline.New(reader, analyzer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, predictor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// openModelStore builds the configured artifact store. The returned closer is
// a no-op for the file backend.
func openModelStore(cfg *config.Config, logger *slog.Logger) (model.Store, func(), error) {
	switch cfg.ModelStore {
	case "sqlite":
		if dir := filepath.Dir(cfg.ModelDBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		db, err := sql.Open("sqlite", cfg.ModelDBPath)
		if err != nil {
			return nil, nil, err
		}
		store := modelstore.NewSQLiteStore(db, "weather_trend")
		if err := store.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("using sqlite model store", "path", cfg.ModelDBPath)
		return store, func() { db.Close() }, nil
	default:
		logger.Info("using file model store", "path", cfg.ModelPath)
		return modelstore.NewFileStore(cfg.ModelPath), func() {}, nil
	}
}
