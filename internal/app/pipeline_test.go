package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visub/internal/style"
	"visub/internal/transcriber"
	"visub/internal/transcript"
)

type stubTranscriber struct {
	result  *transcript.Result
	err     error
	gotOpts transcriber.Options
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ string, opts transcriber.Options) (*transcript.Result, error) {
	s.gotOpts = opts
	return s.result, s.err
}

type stubMedia struct {
	extractErr error
	burns      [][3]string
}

func (s *stubMedia) ExtractAudio(_ context.Context, _, _ string) error {
	return s.extractErr
}

func (s *stubMedia) BurnSubtitles(_ context.Context, video, ass, out string) error {
	s.burns = append(s.burns, [3]string{video, ass, out})
	return nil
}

func (s *stubMedia) Duration(_ context.Context, _ string) (float64, error) {
	return 42.0, nil
}

type stubDownloader struct {
	calls int
}

func (s *stubDownloader) Download(_ context.Context, _, destDir string) (string, error) {
	s.calls++
	dest := filepath.Join(destDir, "remote.mp4")
	return dest, os.WriteFile(dest, []byte("video"), 0o644)
}

func twoSpeakerTranscript() *transcript.Result {
	return &transcript.Result{
		Language: "en",
		Segments: []transcript.Segment{{
			Start: 0, End: 2,
			Words: []transcript.Word{
				{Text: "Hello", Start: 0.0, End: 0.5, Speaker: "SPEAKER_00"},
				{Text: "there", Start: 0.5, End: 1.0, Speaker: "SPEAKER_00"},
				{Text: "friend", Start: 1.0, End: 1.5, Speaker: "SPEAKER_01"},
			},
		}},
	}
}

func TestPipeline_Process(t *testing.T) {
	t.Run("should produce an ASS track for a local video", func(t *testing.T) {
		// Arrange
		outDir := t.TempDir()
		tr := &stubTranscriber{result: twoSpeakerTranscript()}
		p := NewPipeline(tr, &stubMedia{}, nil)

		// Act
		out, err := p.Process(context.Background(), "/videos/clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: outDir,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "clip.ass"), out.ASSPath)
		assert.Empty(t, out.SRTPath)
		assert.Empty(t, out.VideoPath)

		data, err := os.ReadFile(out.ASSPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[Script Info]")
	})

	t.Run("should auto-style detected speakers when none are configured", func(t *testing.T) {
		outDir := t.TempDir()
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, &stubMedia{}, nil)

		out, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: outDir,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"SPEAKER_00", "SPEAKER_01"}, out.Speakers)

		data, err := os.ReadFile(out.ASSPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Style: Speaker_SPEAKER_00,")
		assert.Contains(t, string(data), "Style: Speaker_SPEAKER_01,")
	})

	t.Run("should write the SRT when requested", func(t *testing.T) {
		outDir := t.TempDir()
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, &stubMedia{}, nil)
		cfg := style.DefaultConfig()
		cfg.OutputSRT = true

		out, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: cfg,
			OutputDir: outDir,
		})

		require.NoError(t, err)
		require.NotEmpty(t, out.SRTPath)
		data, err := os.ReadFile(out.SRTPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[SPEAKER_00] Hello there")
	})

	t.Run("should burn subtitles into a new video", func(t *testing.T) {
		outDir := t.TempDir()
		media := &stubMedia{}
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, media, nil)

		out, err := p.Process(context.Background(), "/videos/clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: outDir,
			BurnIn:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "clip_subtitled.mp4"), out.VideoPath)
		require.Len(t, media.burns, 1)
		assert.Equal(t, "/videos/clip.mp4", media.burns[0][0])
		assert.Equal(t, out.ASSPath, media.burns[0][1])
	})

	t.Run("should skip burn-in for SRT-only runs", func(t *testing.T) {
		outDir := t.TempDir()
		media := &stubMedia{}
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, media, nil)

		out, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: outDir,
			BurnIn:    true,
			SRTOnly:   true,
		})

		require.NoError(t, err)
		assert.Empty(t, media.burns)
		assert.NotEmpty(t, out.SRTPath)
		assert.NotEmpty(t, out.ASSPath)
	})

	t.Run("should download remote inputs first", func(t *testing.T) {
		outDir := t.TempDir()
		dl := &stubDownloader{}
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, &stubMedia{}, dl)

		out, err := p.Process(context.Background(), "https://example.com/remote.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: outDir,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, dl.calls)
		assert.Equal(t, filepath.Join(outDir, "remote.ass"), out.ASSPath)
	})

	t.Run("should reject remote inputs without a downloader", func(t *testing.T) {
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, &stubMedia{}, nil)

		_, err := p.Process(context.Background(), "https://example.com/clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: t.TempDir(),
		})

		assert.ErrorContains(t, err, "requires a downloader")
	})

	t.Run("should request diarization when speaker detection is on", func(t *testing.T) {
		tr := &stubTranscriber{result: twoSpeakerTranscript()}
		p := NewPipeline(tr, &stubMedia{}, nil)

		cfg := style.DefaultConfig()
		_, err := p.Process(context.Background(), "clip.mp4", Options{Subtitles: cfg, OutputDir: t.TempDir()})
		require.NoError(t, err)
		assert.True(t, tr.gotOpts.Diarize)

		cfg.EnableSpeakerDetection = false
		_, err = p.Process(context.Background(), "clip.mp4", Options{Subtitles: cfg, OutputDir: t.TempDir()})
		require.NoError(t, err)
		assert.False(t, tr.gotOpts.Diarize)
	})

	t.Run("should report stages in order", func(t *testing.T) {
		var stages []Stage
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, &stubMedia{}, nil)

		_, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: t.TempDir(),
			BurnIn:    true,
			Progress:  func(s Stage, _ string) { stages = append(stages, s) },
		})

		require.NoError(t, err)
		assert.Equal(t, []Stage{StageExtract, StageTranscribe, StageGenerate, StageBurn}, stages)
	})

	t.Run("should surface extraction failures", func(t *testing.T) {
		media := &stubMedia{extractErr: errors.New("no such stream")}
		p := NewPipeline(&stubTranscriber{result: twoSpeakerTranscript()}, media, nil)

		_, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: t.TempDir(),
		})

		assert.ErrorContains(t, err, "audio extraction failed")
	})

	t.Run("should surface transcription failures", func(t *testing.T) {
		tr := &stubTranscriber{err: errors.New("model exploded")}
		p := NewPipeline(tr, &stubMedia{}, nil)

		_, err := p.Process(context.Background(), "clip.mp4", Options{
			Subtitles: style.DefaultConfig(),
			OutputDir: t.TempDir(),
		})

		assert.ErrorContains(t, err, "transcription failed")
	})
}
