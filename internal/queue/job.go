// Package queue persists subtitle jobs in SQLite and runs them through the
// processing pipeline in the background. Each job owns a private directory
// holding the uploaded video and the generated tracks; expired jobs are
// removed together with their files.
package queue

import (
	"fmt"
	"time"

	"visub/internal/transcriber"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the job has finished, successfully or not.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one subtitle-generation request persisted in SQLite.
type Job struct {
	ID       string
	Filename string // original upload name
	Source   string // uploaded video path, or a remote URL
	Dir      string // job root directory, removed on delete/expiry

	OutputDir         string
	ConfigJSON        string // subtitle configuration as submitted
	TranscriptionJSON string // optional transcription overrides as submitted

	Status   Status
	Progress float64
	Message  string
	Error    string

	ASSPath   string
	SRTPath   string
	VideoPath string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// SetProgress updates the progress percentage and message together.
func (j *Job) SetProgress(percent float64, message string) {
	j.Progress = percent
	j.Message = message
}

// SetFailed marks the job failed, recording the cause.
func (j *Job) SetFailed(cause string) {
	now := time.Now().UTC()
	j.Status = StatusFailed
	j.Progress = 0
	j.Message = "Processing failed"
	j.Error = cause
	j.CompletedAt = &now
}

// SetCompleted marks the job done. Output paths are assigned by the caller
// before saving.
func (j *Job) SetCompleted() {
	now := time.Now().UTC()
	j.Status = StatusCompleted
	j.Progress = 100
	j.Message = "Processing completed"
	j.Error = ""
	j.CompletedAt = &now
}

// TranscriptionSettings mirrors the transcription_config JSON accepted at
// upload. Empty fields fall back to the worker's base options.
type TranscriptionSettings struct {
	Model       string `json:"model"`
	Language    string `json:"language"`
	Device      string `json:"device"`
	ComputeType string `json:"compute_type"`
	BatchSize   int    `json:"batch_size"`
	HFToken     string `json:"hf_token"`
}

// Validate rejects settings the transcription engine would refuse.
func (s TranscriptionSettings) Validate() error {
	if s.Model != "" && !transcriber.IsValidModel(s.Model) {
		return fmt.Errorf("unknown model %q", s.Model)
	}
	if s.Language != "" && !transcriber.IsValidLanguage(s.Language) {
		return fmt.Errorf("unknown language %q", s.Language)
	}
	if s.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative")
	}
	return nil
}

// apply overlays the non-empty settings onto base options.
func (s TranscriptionSettings) apply(base transcriber.Options) transcriber.Options {
	if s.Model != "" {
		base.Model = s.Model
	}
	if s.Language != "" {
		base.Language = s.Language
	}
	if s.Device != "" {
		base.Device = s.Device
	}
	if s.ComputeType != "" {
		base.ComputeType = s.ComputeType
	}
	if s.BatchSize > 0 {
		base.BatchSize = s.BatchSize
	}
	if s.HFToken != "" {
		base.HFToken = s.HFToken
	}
	return base
}
