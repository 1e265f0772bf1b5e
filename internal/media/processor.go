// Package media wraps the ffmpeg invocations the pipeline needs: pulling a
// transcription-ready audio track out of a video and burning the finished
// subtitles back in.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Processor shells out to ffmpeg and ffprobe.
type Processor struct {
	ffmpeg  string
	ffprobe string
	logger  *zap.Logger
}

// NewProcessor creates a Processor with a no-op logger.
func NewProcessor() *Processor {
	return NewProcessorWithLogger(zap.NewNop())
}

// NewProcessorWithLogger creates a Processor that logs each invocation.
func NewProcessorWithLogger(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{ffmpeg: "ffmpeg", ffprobe: "ffprobe", logger: logger}
}

// ExtractAudio writes the video's audio as 16kHz mono PCM, the sample format
// WhisperX expects.
func (p *Processor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	p.logger.Info("extracting audio",
		zap.String("video", videoPath),
		zap.String("audio", audioPath))

	return p.run(ctx, extractArgs(videoPath, audioPath))
}

// BurnSubtitles renders the ASS track into the video frames. The subtitles
// filter forces a video re-encode; the audio stream is copied untouched.
func (p *Processor) BurnSubtitles(ctx context.Context, videoPath, assPath, outputPath string) error {
	p.logger.Info("burning subtitles",
		zap.String("video", videoPath),
		zap.String("subtitles", assPath),
		zap.String("output", outputPath))

	return p.run(ctx, burnArgs(videoPath, assPath, outputPath))
}

// Duration reads the container duration in seconds.
func (p *Processor) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := exec.CommandContext(ctx, p.ffprobe, args...).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return seconds, nil
}

func (p *Processor) run(ctx context.Context, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.ffmpeg, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func extractArgs(src, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-vn", "-sn", "-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

func burnArgs(src, assPath, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		"-vf", "subtitles=" + escapeFilterPath(assPath),
		"-c:a", "copy",
		dest,
	}
}

// escapeFilterPath escapes the characters the ffmpeg filter graph parser
// treats specially, so subtitle paths with colons or quotes survive.
func escapeFilterPath(path string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return r.Replace(path)
}
