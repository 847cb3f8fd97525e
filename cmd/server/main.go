package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dinepick/config"
	"dinepick/database"
	"dinepick/dataset"
	"dinepick/logging"
	"dinepick/metrics"
	"dinepick/models"
	"dinepick/recommend"
	"dinepick/server"
)

// main loads configuration and the restaurant dataset, then serves the
// dashboard and JSON API until interrupted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := loadRecords(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.Dataset.Source).Msg("Failed to load dataset")
	}
	checkModelArtifact(cfg.Model.Path)

	ds := dataset.New(records)
	metrics.DatasetRecords.Set(float64(ds.Len()))
	logging.Info().Int("records", ds.Len()).Int("countries", len(ds.Lookup().Countries())).Msg("Dataset loaded")

	mode, _ := recommend.ModeByName(cfg.Recommend.DefaultMode)
	engine := recommend.New(ds, recommend.WithLimit(cfg.Recommend.Limit))

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: server.NewRouter(server.Deps{
			Dataset:     ds,
			Engine:      engine,
			DefaultMode: mode,
			Security:    cfg.Security,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("port", cfg.Server.Port).Str("default_mode", mode.Name).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		logging.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}

func loadRecords(ctx context.Context, cfg *config.Config) ([]models.Restaurant, error) {
	if cfg.Dataset.Source == "postgres" {
		db, err := database.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return database.LoadRestaurants(ctx, db)
	}

	records, err := dataset.LoadCSV(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Dataset.CountryCodesPath != "" {
		names, err := dataset.LoadCountryNames(cfg.Dataset.CountryCodesPath)
		if err != nil {
			return nil, err
		}
		dataset.ApplyCountryNames(records, names)
	}
	return records, nil
}

// checkModelArtifact reports whether the similarity artifact is present.
// Recommendations never depend on it.
func checkModelArtifact(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Model artifact not available")
		return
	}
	logging.Info().Str("path", path).Int64("bytes", info.Size()).Msg("Model artifact found")
}
