package queue

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visub/internal/app"
	"visub/internal/transcriber"
)

type fakeProcessor struct {
	outputs  *app.Outputs
	err      error
	calls    int
	gotInput string
	gotOpts  app.Options
	stages   []app.Stage
}

func (f *fakeProcessor) Process(_ context.Context, input string, opts app.Options) (*app.Outputs, error) {
	f.calls++
	f.gotInput = input
	f.gotOpts = opts
	if opts.Progress != nil {
		for _, stage := range f.stages {
			opts.Progress(stage, "working")
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.outputs, nil
}

func pendingJob(t *testing.T, store *Store) *Job {
	t.Helper()
	job := &Job{
		Filename:          "clip.mp4",
		Source:            "/uploads/x/input_clip.mp4",
		OutputDir:         "/uploads/x/output",
		ConfigJSON:        `{"max_words": 2}`,
		TranscriptionJSON: `{"model": "small"}`,
	}
	require.NoError(t, store.Create(context.Background(), job))
	return job
}

func TestWorker_ProcessJob(t *testing.T) {
	t.Run("should run a job to completion", func(t *testing.T) {
		// Arrange
		store := openTestStore(t)
		processor := &fakeProcessor{outputs: &app.Outputs{
			ASSPath:   "/out/clip.ass",
			SRTPath:   "/out/clip.srt",
			VideoPath: "/out/clip_subtitled.mp4",
			Events:    12,
		}}
		worker := NewWorker(store, processor, WorkerOptions{
			Transcription: transcriber.Options{Model: "medium", HFToken: "hf-token"},
		})
		job := pendingJob(t, store)

		// Act
		worker.processJob(context.Background(), job)

		// Assert
		fetched, err := store.GetByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, fetched.Status)
		assert.Equal(t, 100.0, fetched.Progress)
		assert.Equal(t, "Processing completed", fetched.Message)
		assert.Equal(t, "/out/clip.ass", fetched.ASSPath)
		assert.Equal(t, "/out/clip.srt", fetched.SRTPath)
		assert.Equal(t, "/out/clip_subtitled.mp4", fetched.VideoPath)
		assert.NotNil(t, fetched.CompletedAt)

		assert.Equal(t, "/uploads/x/input_clip.mp4", processor.gotInput)
		assert.True(t, processor.gotOpts.BurnIn)
		assert.Equal(t, "/uploads/x/output", processor.gotOpts.OutputDir)
		assert.Equal(t, 2, int(processor.gotOpts.Subtitles.MaxWords))
	})

	t.Run("should overlay job settings onto the base transcription options", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{outputs: &app.Outputs{}}
		worker := NewWorker(store, processor, WorkerOptions{
			Transcription: transcriber.Options{Model: "medium", Device: "cuda", HFToken: "hf-token"},
		})
		job := pendingJob(t, store)

		worker.processJob(context.Background(), job)

		assert.Equal(t, "small", processor.gotOpts.Transcription.Model)
		assert.Equal(t, "cuda", processor.gotOpts.Transcription.Device)
		assert.Equal(t, "hf-token", processor.gotOpts.Transcription.HFToken)
	})

	t.Run("should record pipeline failures", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{err: errors.New("transcription failed: model exploded")}
		worker := NewWorker(store, processor, WorkerOptions{})
		job := pendingJob(t, store)

		worker.processJob(context.Background(), job)

		fetched, err := store.GetByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, fetched.Status)
		assert.Equal(t, 0.0, fetched.Progress)
		assert.Equal(t, "Processing failed", fetched.Message)
		assert.Contains(t, fetched.Error, "model exploded")
		assert.NotNil(t, fetched.CompletedAt)
	})

	t.Run("should fold completed runs into the performance aggregate", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{outputs: &app.Outputs{Events: 9, Elapsed: 3 * time.Second}}
		worker := NewWorker(store, processor, WorkerOptions{
			Transcription: transcriber.Options{Model: "medium", Device: "cuda"},
		})
		job := pendingJob(t, store)

		worker.processJob(context.Background(), job)

		metrics := worker.Performance()
		assert.Equal(t, int64(1), metrics.TotalRuns)
		assert.Equal(t, int64(9), metrics.TotalEvents)
		assert.Equal(t, int64(1), metrics.GPURuns)
		assert.Equal(t, 3*time.Second, metrics.LastElapsed)
	})

	t.Run("should not count failed runs in the performance aggregate", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{err: errors.New("boom")}
		worker := NewWorker(store, processor, WorkerOptions{})
		job := pendingJob(t, store)

		worker.processJob(context.Background(), job)

		assert.Zero(t, worker.Performance().TotalRuns)
	})

	t.Run("should fail jobs with malformed subtitle configuration", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{outputs: &app.Outputs{}}
		worker := NewWorker(store, processor, WorkerOptions{})
		job := &Job{Filename: "a.mp4", Source: "/a.mp4", ConfigJSON: "{not json"}
		require.NoError(t, store.Create(context.Background(), job))

		worker.processJob(context.Background(), job)

		fetched, err := store.GetByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, fetched.Status)
		assert.Contains(t, fetched.Error, "invalid subtitle configuration")
		assert.Zero(t, processor.calls)
	})
}

func TestStageProgress(t *testing.T) {
	t.Run("should map every stage onto the reporting scale", func(t *testing.T) {
		cases := []struct {
			stage    app.Stage
			expected float64
		}{
			{app.StageDownload, 15},
			{app.StageExtract, 25},
			{app.StageTranscribe, 40},
			{app.StageGenerate, 75},
			{app.StageBurn, 90},
			{app.Stage("mystery"), 50},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.expected, stageProgress(tc.stage), "stage %s", tc.stage)
		}
	})
}

func TestWorker_CleanupExpired(t *testing.T) {
	backdate := func(t *testing.T, store *Store, id string, age time.Duration) {
		t.Helper()
		stamp := time.Now().UTC().Add(-age).Format(time.RFC3339Nano)
		_, err := store.db.Exec("UPDATE jobs SET created_at = ? WHERE id = ?", stamp, id)
		require.NoError(t, err)
	}

	t.Run("should remove expired jobs and their directories", func(t *testing.T) {
		// Arrange
		store := openTestStore(t)
		ctx := context.Background()
		dir := filepath.Join(t.TempDir(), "job-old")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "input.mp4"), []byte("x"), 0o644))

		old := &Job{Filename: "old.mp4", Source: "/old.mp4", Dir: dir}
		require.NoError(t, store.Create(ctx, old))
		old.SetCompleted()
		require.NoError(t, store.Update(ctx, old))
		backdate(t, store, old.ID, 48*time.Hour)

		fresh := &Job{Filename: "fresh.mp4", Source: "/fresh.mp4"}
		require.NoError(t, store.Create(ctx, fresh))

		worker := NewWorker(store, &fakeProcessor{}, WorkerOptions{Retention: 24 * time.Hour})

		// Act
		removed, err := worker.CleanupExpired(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr))

		gone, err := store.GetByID(ctx, old.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		kept, err := store.GetByID(ctx, fresh.ID)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("should leave processing jobs alone", func(t *testing.T) {
		store := openTestStore(t)
		ctx := context.Background()
		job := &Job{Filename: "busy.mp4", Source: "/busy.mp4"}
		require.NoError(t, store.Create(ctx, job))
		job.Status = StatusProcessing
		require.NoError(t, store.Update(ctx, job))
		backdate(t, store, job.ID, 48*time.Hour)

		worker := NewWorker(store, &fakeProcessor{}, WorkerOptions{Retention: 24 * time.Hour})

		removed, err := worker.CleanupExpired(ctx)

		require.NoError(t, err)
		assert.Zero(t, removed)
		kept, err := store.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})
}

func TestWorker_Run(t *testing.T) {
	t.Run("should drain pending jobs until cancelled", func(t *testing.T) {
		store := openTestStore(t)
		processor := &fakeProcessor{outputs: &app.Outputs{ASSPath: "/out/clip.ass"}}
		worker := NewWorker(store, processor, WorkerOptions{PollInterval: 10 * time.Millisecond})
		job := pendingJob(t, store)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- worker.Run(ctx) }()

		require.Eventually(t, func() bool {
			fetched, err := store.GetByID(context.Background(), job.ID)
			return err == nil && fetched != nil && fetched.Status == StatusCompleted
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("worker did not stop after cancellation")
		}
	})
}
