package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"visub/internal/app"
	"visub/internal/performance"
	"visub/internal/style"
	"visub/internal/transcriber"
)

// Processor runs one video through the subtitle pipeline.
type Processor interface {
	Process(ctx context.Context, input string, opts app.Options) (*app.Outputs, error)
}

// WorkerOptions tunes the background worker. Zero values fall back to the
// defaults noted per field.
type WorkerOptions struct {
	PollInterval    time.Duration       // default 2s
	CleanupInterval time.Duration       // default 1h
	Retention       time.Duration       // default 24h
	Transcription   transcriber.Options // base options, overlaid by per-job settings
}

func (o WorkerOptions) withDefaults() WorkerOptions {
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Second
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = time.Hour
	}
	if o.Retention <= 0 {
		o.Retention = 24 * time.Hour
	}
	return o
}

// Worker drains pending jobs from the store and runs them through the
// pipeline one at a time, and periodically removes expired jobs along with
// their files.
type Worker struct {
	store     *Store
	processor Processor
	opts      WorkerOptions
	logger    *zap.Logger
	perf      *performance.Monitor
}

// NewWorker creates a Worker with a no-op logger.
func NewWorker(store *Store, processor Processor, opts WorkerOptions) *Worker {
	return NewWorkerWithLogger(store, processor, opts, zap.NewNop())
}

// NewWorkerWithLogger creates a Worker that logs job lifecycle events.
func NewWorkerWithLogger(store *Store, processor Processor, opts WorkerOptions, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		store:     store,
		processor: processor,
		opts:      opts.withDefaults(),
		logger:    logger,
		perf:      performance.NewMonitorWithLogger(logger),
	}
}

// Performance reports the aggregate pipeline statistics for this worker.
func (w *Worker) Performance() performance.Metrics {
	return w.perf.Metrics()
}

// Run processes jobs until the context is cancelled. Jobs left in processing
// by a previous run are requeued first.
func (w *Worker) Run(ctx context.Context) error {
	if requeued, err := w.store.ResetStuckProcessing(ctx); err != nil {
		w.logger.Warn("failed to requeue interrupted jobs", zap.Error(err))
	} else if requeued > 0 {
		w.logger.Info("requeued interrupted jobs", zap.Int64("count", requeued))
	}

	w.drain(ctx)

	poll := time.NewTicker(w.opts.PollInterval)
	defer poll.Stop()
	cleanup := time.NewTicker(w.opts.CleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopping")
			return nil
		case <-poll.C:
			w.drain(ctx)
		case <-cleanup.C:
			if _, err := w.CleanupExpired(ctx); err != nil {
				w.logger.Warn("job cleanup failed", zap.Error(err))
			}
			w.perf.LogSummary()
		}
	}
}

// drain processes pending jobs until the queue is empty.
func (w *Worker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		job, err := w.store.NextPending(ctx)
		if err != nil {
			w.logger.Error("failed to poll for pending jobs", zap.Error(err))
			return
		}
		if job == nil {
			return
		}
		w.processJob(ctx, job)
	}
}

func (w *Worker) processJob(ctx context.Context, job *Job) {
	w.logger.Info("job started",
		zap.String("job_id", job.ID),
		zap.String("filename", job.Filename))

	job.Status = StatusProcessing
	job.SetProgress(10, "Starting processing")
	if err := w.store.Update(ctx, job); err != nil {
		w.logger.Error("failed to mark job processing", zap.String("job_id", job.ID), zap.Error(err))
		return
	}

	outputs, err := w.runPipeline(ctx, job)
	if err != nil {
		w.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
		job.SetFailed(err.Error())
		if updateErr := w.store.Update(ctx, job); updateErr != nil {
			w.logger.Error("failed to record job failure", zap.String("job_id", job.ID), zap.Error(updateErr))
		}
		return
	}

	job.ASSPath = outputs.ASSPath
	job.SRTPath = outputs.SRTPath
	job.VideoPath = outputs.VideoPath
	job.SetCompleted()
	if err := w.store.Update(ctx, job); err != nil {
		w.logger.Error("failed to record job completion", zap.String("job_id", job.ID), zap.Error(err))
		return
	}

	w.logger.Info("job completed",
		zap.String("job_id", job.ID),
		zap.Int("events", outputs.Events),
		zap.Duration("elapsed", outputs.Elapsed))
}

func (w *Worker) runPipeline(ctx context.Context, job *Job) (*app.Outputs, error) {
	cfg := style.DefaultConfig()
	if job.ConfigJSON != "" {
		if err := json.Unmarshal([]byte(job.ConfigJSON), &cfg); err != nil {
			return nil, fmt.Errorf("invalid subtitle configuration: %w", err)
		}
	}

	tOpts := w.opts.Transcription
	if job.TranscriptionJSON != "" {
		var settings TranscriptionSettings
		if err := json.Unmarshal([]byte(job.TranscriptionJSON), &settings); err != nil {
			return nil, fmt.Errorf("invalid transcription configuration: %w", err)
		}
		tOpts = settings.apply(tOpts)
	}

	progress := func(stage app.Stage, detail string) {
		job.SetProgress(stageProgress(stage), detail)
		if err := w.store.Update(ctx, job); err != nil {
			w.logger.Warn("failed to record job progress", zap.String("job_id", job.ID), zap.Error(err))
		}
	}

	outputs, err := w.processor.Process(ctx, job.Source, app.Options{
		Transcription: tOpts,
		Subtitles:     cfg,
		OutputDir:     job.OutputDir,
		BurnIn:        true,
		Progress:      progress,
	})
	if err != nil {
		return nil, err
	}

	w.perf.Record(tOpts.Device, outputs.Events, outputs.Elapsed)
	return outputs, nil
}

// stageProgress maps pipeline stages onto the coarse percentage scale the
// status endpoint reports.
func stageProgress(stage app.Stage) float64 {
	switch stage {
	case app.StageDownload:
		return 15
	case app.StageExtract:
		return 25
	case app.StageTranscribe:
		return 40
	case app.StageGenerate:
		return 75
	case app.StageBurn:
		return 90
	default:
		return 50
	}
}

// CleanupExpired removes jobs older than the retention window together with
// their directories, returning how many were removed. Jobs still processing
// are left alone.
func (w *Worker) CleanupExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-w.opts.Retention)
	expired, err := w.store.ExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, job := range expired {
		if job.Status == StatusProcessing {
			continue
		}
		if job.Dir != "" {
			if err := os.RemoveAll(job.Dir); err != nil {
				w.logger.Warn("failed to remove job directory",
					zap.String("job_id", job.ID),
					zap.String("dir", job.Dir),
					zap.Error(err))
				continue
			}
		}
		if _, err := w.store.Remove(ctx, job.ID); err != nil {
			w.logger.Warn("failed to remove expired job", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}
		removed++
		w.logger.Info("removed expired job", zap.String("job_id", job.ID))
	}
	return removed, nil
}
