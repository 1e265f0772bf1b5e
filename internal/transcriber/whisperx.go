// Package transcriber produces word-level transcripts by driving WhisperX
// through uvx, so the Python toolchain never has to be installed by hand.
package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"visub/internal/transcript"
)

// Options controls one transcription run. Zero values are filled with the
// engine defaults before the command is built.
type Options struct {
	Model       string
	Language    string // "" or "auto" means detect
	Device      string // "cuda" or "cpu"
	ComputeType string // "float16" on GPU, "int8" on CPU
	BatchSize   int
	OutputDir   string // working dir for WhisperX output, temp dir when empty
	Diarize     bool
	HFToken     string // enables real diarization; without it speakers are simulated
}

// withDefaults resolves unset options and enforces the combinations WhisperX
// itself requires: int8 inference runs on CPU, and English-only checkpoints
// force English.
func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Device == "" {
		o.Device = "cpu"
	}
	if o.ComputeType == "" {
		if o.Device == "cuda" {
			o.ComputeType = "float16"
		} else {
			o.ComputeType = "int8"
		}
	}
	if o.ComputeType == "int8" && o.Device != "cpu" {
		o.Device = "cpu"
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 16
	}
	if o.Language == "auto" {
		o.Language = ""
	}
	if IsEnglishOnly(o.Model) {
		o.Language = "en"
	}
	return o
}

// Engine runs the WhisperX CLI and parses its JSON output.
type Engine struct {
	command string
	logger  *zap.Logger
}

// NewEngine creates an Engine with a no-op logger.
func NewEngine() *Engine {
	return NewEngineWithLogger(zap.NewNop())
}

// NewEngineWithLogger creates an Engine that logs each run.
func NewEngineWithLogger(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{command: "uvx", logger: logger}
}

// Transcribe runs WhisperX on an audio file and returns the aligned
// word-level transcript. When diarization is requested without a HuggingFace
// token, two speakers are simulated so styling stays demonstrable.
func (e *Engine) Transcribe(ctx context.Context, audioPath string, opts Options) (*transcript.Result, error) {
	opts = opts.withDefaults()

	if !IsValidModel(opts.Model) {
		return nil, fmt.Errorf("unsupported model %q", opts.Model)
	}
	if opts.Language != "" && !IsValidLanguage(opts.Language) {
		return nil, fmt.Errorf("unsupported language %q", opts.Language)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		dir, err := os.MkdirTemp("", "visub-whisperx-")
		if err != nil {
			return nil, fmt.Errorf("failed to create transcription work dir: %w", err)
		}
		defer os.RemoveAll(dir)
		outputDir = dir
	}

	args := buildArgs(audioPath, outputDir, opts)
	e.logger.Info("starting transcription",
		zap.String("audio", audioPath),
		zap.String("model", opts.Model),
		zap.String("device", opts.Device),
		zap.String("compute_type", opts.ComputeType),
		zap.Bool("diarize", opts.Diarize))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("whisperx failed: %w: %s", err, tail(stderr.String()))
	}

	resultPath := filepath.Join(outputDir, outputStem(audioPath)+".json")
	result, err := transcript.Load(resultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisperx output: %w", err)
	}

	if opts.Diarize && opts.HFToken == "" {
		e.logger.Warn("no HuggingFace token provided, simulating speakers")
		SimulateSpeakers(result)
	}

	e.logger.Info("transcription complete",
		zap.Int("segments", len(result.Segments)),
		zap.Int("words", result.WordCount()),
		zap.String("language", result.Language))

	return result, nil
}

// buildArgs assembles the uvx invocation. WhisperX treats a missing
// --language flag as auto-detect.
func buildArgs(audioPath, outputDir string, opts Options) []string {
	args := []string{
		"whisperx",
		audioPath,
		"--model", opts.Model,
		"--device", opts.Device,
		"--compute_type", opts.ComputeType,
		"--batch_size", strconv.Itoa(opts.BatchSize),
		"--output_dir", outputDir,
		"--output_format", "json",
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.Diarize && opts.HFToken != "" {
		args = append(args, "--diarize", "--hf_token", opts.HFToken)
	}
	return args
}

// outputStem returns the basename WhisperX derives its output files from.
func outputStem(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// tail trims command output to its last few lines for error messages.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) <= 5 {
		return s
	}
	return strings.Join(lines[len(lines)-5:], "\n")
}
