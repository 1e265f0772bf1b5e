package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"visub/internal/app"
	"visub/internal/config"
	"visub/internal/fetch"
	"visub/internal/gpu"
	"visub/internal/logger"
	"visub/internal/media"
	"visub/internal/queue"
	"visub/internal/server"
	"visub/internal/transcriber"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the subtitle generation web service",
		Long: "Serve starts the HTTP API for uploading videos and tracking subtitle\n" +
			"generation jobs, along with the background worker that drains the queue.\n" +
			"Settings come from a YAML config file when --config is given, otherwise\n" +
			"from VISUB_* environment variables (a .env file is honored).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default: environment)")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	var (
		cfg *config.Configuration
		err error
	)
	if configPath != "" {
		cfg, err = config.NewConfigurationFromFile(configPath)
	} else {
		cfg, err = config.NewConfigurationFromEnv()
	}
	if err != nil {
		return err
	}

	log, err := logger.NewProductionLogger(cfg.GetLogLevel())
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := os.MkdirAll(cfg.GetUploadDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", cfg.GetUploadDir(), err)
	}

	store, err := queue.OpenWithLogger(cfg.GetDatabasePath(), log)
	if err != nil {
		return fmt.Errorf("failed to open job store: %w", err)
	}
	defer store.Close()

	pipeline := app.NewPipelineWithLogger(
		transcriber.NewEngineWithLogger(log),
		media.NewProcessorWithLogger(log),
		fetch.NewDownloaderWithLogger(log),
		log,
	)

	worker := queue.NewWorkerWithLogger(store, pipeline, queue.WorkerOptions{
		CleanupInterval: cfg.GetCleanupInterval(),
		Retention:       cfg.GetFileRetention(),
		Transcription: transcriber.Options{
			Device:  gpu.NewDetectorWithLogger(log).Device(),
			HFToken: cfg.GetHFToken(),
		},
	}, log)

	srv := server.NewWithLogger(store, worker, server.Options{
		UploadDir:      cfg.GetUploadDir(),
		MaxUploadBytes: cfg.GetMaxUploadBytes(),
		Version:        version,
	}, log)

	log.Info("starting visub server",
		zap.String("addr", cfg.GetServerAddr()),
		zap.String("upload_dir", cfg.GetUploadDir()),
		zap.String("database", cfg.GetDatabasePath()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return worker.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx, cfg.GetServerAddr()) })
	return g.Wait()
}
