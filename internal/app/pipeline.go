// Package app orchestrates the full subtitle pipeline for one video:
// fetch, audio extraction, transcription, grouping, styling, track
// emission, and optional burn-in.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"visub/internal/chunker"
	"visub/internal/fetch"
	"visub/internal/style"
	"visub/internal/subtitle"
	"visub/internal/transcriber"
	"visub/internal/transcript"
)

// Stage identifies a pipeline phase for progress reporting.
type Stage string

const (
	StageDownload   Stage = "download"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageGenerate   Stage = "generate"
	StageBurn       Stage = "burn"
)

// ProgressFunc receives stage transitions. Used by the job queue to surface
// what a long-running job is doing.
type ProgressFunc func(stage Stage, detail string)

// Transcriber produces word-level transcripts from an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts transcriber.Options) (*transcript.Result, error)
}

// MediaProcessor covers the ffmpeg work on either side of transcription.
type MediaProcessor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	BurnSubtitles(ctx context.Context, videoPath, assPath, outputPath string) error
	Duration(ctx context.Context, path string) (float64, error)
}

// Downloader fetches remote video sources to local files.
type Downloader interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}

// Options configures one pipeline run.
type Options struct {
	Transcription transcriber.Options
	Subtitles     style.Config
	OutputDir     string
	SRTOnly       bool // skip burn-in, always write the SRT
	BurnIn        bool
	Progress      ProgressFunc
}

// Outputs reports what one run produced.
type Outputs struct {
	ASSPath   string
	SRTPath   string
	VideoPath string
	Speakers  []string
	Groups    int
	Events    int
	Elapsed   time.Duration
}

// Pipeline wires the collaborators together. Construct once, then Process
// each input; Process is safe for concurrent use when the collaborators are.
type Pipeline struct {
	transcriber Transcriber
	media       MediaProcessor
	downloader  Downloader
	logger      *zap.Logger
}

// NewPipeline creates a Pipeline with a no-op logger.
func NewPipeline(t Transcriber, m MediaProcessor, d Downloader) *Pipeline {
	return NewPipelineWithLogger(t, m, d, zap.NewNop())
}

// NewPipelineWithLogger creates a Pipeline that traces each stage.
func NewPipelineWithLogger(t Transcriber, m MediaProcessor, d Downloader, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{transcriber: t, media: m, downloader: d, logger: logger}
}

// Process runs the pipeline for one input, which may be a local path or an
// HTTP(S) URL. Outputs land in opts.OutputDir named after the input's stem.
func (p *Pipeline) Process(ctx context.Context, input string, opts Options) (*Outputs, error) {
	started := time.Now()
	progress := opts.Progress
	if progress == nil {
		progress = func(Stage, string) {}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	workDir, err := os.MkdirTemp("", "visub-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	videoPath := input
	if fetch.IsURL(input) {
		if p.downloader == nil {
			return nil, fmt.Errorf("remote input %s requires a downloader", input)
		}
		progress(StageDownload, input)
		videoPath, err = p.downloader.Download(ctx, input, workDir)
		if err != nil {
			return nil, err
		}
	}

	stem := inputStem(videoPath)

	progress(StageExtract, videoPath)
	audioPath := filepath.Join(workDir, stem+".wav")
	if err := p.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return nil, fmt.Errorf("audio extraction failed for %s: %w", input, err)
	}

	if duration, err := p.media.Duration(ctx, videoPath); err == nil {
		p.logger.Info("processing video",
			zap.String("input", input),
			zap.Float64("duration_seconds", duration))
	}

	progress(StageTranscribe, stem)
	tOpts := opts.Transcription
	tOpts.Diarize = opts.Subtitles.EnableSpeakerDetection
	result, err := p.transcriber.Transcribe(ctx, audioPath, tOpts)
	if err != nil {
		return nil, fmt.Errorf("transcription failed for %s: %w", input, err)
	}

	progress(StageGenerate, stem)
	outputs, err := p.generate(result, stem, opts)
	if err != nil {
		return nil, err
	}

	if opts.BurnIn && !opts.SRTOnly {
		progress(StageBurn, stem)
		burnedPath := filepath.Join(opts.OutputDir, stem+"_subtitled.mp4")
		if err := p.media.BurnSubtitles(ctx, videoPath, outputs.ASSPath, burnedPath); err != nil {
			return nil, fmt.Errorf("subtitle burn-in failed for %s: %w", input, err)
		}
		outputs.VideoPath = burnedPath
	}

	outputs.Elapsed = time.Since(started)
	p.logger.Info("pipeline complete",
		zap.String("input", input),
		zap.Int("groups", outputs.Groups),
		zap.Int("events", outputs.Events),
		zap.Strings("speakers", outputs.Speakers),
		zap.Duration("elapsed", outputs.Elapsed))

	return outputs, nil
}

// generate turns a transcript into the subtitle tracks. Speakers found by
// diarization with no configured styles get auto-generated ones so each
// voice still reads distinctly.
func (p *Pipeline) generate(result *transcript.Result, stem string, opts Options) (*Outputs, error) {
	cfg := opts.Subtitles
	speakers := result.Speakers()

	if cfg.EnableSpeakerDetection && len(cfg.Speakers) == 0 && len(speakers) > 0 {
		cfg.Speakers = style.AutoSpeakerStyles(speakers)
		p.logger.Info("auto-generated speaker styles", zap.Strings("speakers", speakers))
	}

	styles := style.NewStyleSetWithLogger(cfg, p.logger)
	groups := chunker.NewChunkerWithLogger(cfg.MaxWords, p.logger).Chunk(result)
	events := subtitle.NewSynthesizerWithLogger(styles, p.logger).Events(groups)

	out := &Outputs{
		ASSPath:  filepath.Join(opts.OutputDir, stem+".ass"),
		Speakers: speakers,
		Groups:   len(groups),
		Events:   len(events),
	}

	if err := subtitle.SaveASS(out.ASSPath, styles, events); err != nil {
		return nil, err
	}

	if cfg.OutputSRT || opts.SRTOnly {
		out.SRTPath = filepath.Join(opts.OutputDir, stem+".srt")
		if err := subtitle.SaveSRT(out.SRTPath, groups); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
