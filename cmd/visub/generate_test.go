package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visub/internal/style"
)

func TestGenerateOptionsValidate(t *testing.T) {
	t.Run("should accept the defaults", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()

		// Act & Assert
		assert.NoError(t, o.validate())
	})

	t.Run("should reject an unknown model", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.model = "enormous"

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown model "enormous"`)
	})

	t.Run("should reject an unknown language", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.language = "klingon"

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown language")
	})

	t.Run("should reject zero words per subtitle", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.numWords = 0

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "num-words")
	})

	t.Run("should ignore the word count when grouping by sentence", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.numWords = 0
		o.fullSentence = true

		// Act & Assert
		assert.NoError(t, o.validate())
	})

	t.Run("should accept explicit cpu and cuda devices", func(t *testing.T) {
		for _, device := range []string{"cpu", "cuda"} {
			// Arrange
			o := defaultGenerateOptions()
			o.device = device

			// Act & Assert
			assert.NoError(t, o.validate(), "device %s", device)
		}
	})

	t.Run("should reject an unknown device", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.device = "tpu"

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown device")
	})

	t.Run("should accept every built-in preset", func(t *testing.T) {
		for _, p := range style.Presets() {
			// Arrange
			o := defaultGenerateOptions()
			o.preset = p.Name

			// Act & Assert
			assert.NoError(t, o.validate(), "preset %s", p.Name)
		}
	})

	t.Run("should reject an unknown preset", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.preset = "vaporwave"

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown preset "vaporwave"`)
	})

	t.Run("should reject a non-positive job count", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.jobs = 0

		// Act
		err := o.validate()

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jobs")
	})
}

func TestGenerateOptionsSubtitleConfig(t *testing.T) {
	t.Run("should carry the word limit and toggles", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.numWords = 6
		o.outputSRT = true
		o.speakerDetection = false
		o.highlight = false

		// Act
		cfg := o.subtitleConfig()

		// Assert
		assert.Equal(t, style.WordLimit(6), cfg.MaxWords)
		assert.True(t, cfg.OutputSRT)
		assert.False(t, cfg.EnableSpeakerDetection)
		assert.False(t, cfg.EnableWordHighlighting)
		assert.Empty(t, cfg.Speakers)
	})

	t.Run("should switch to sentence grouping", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.fullSentence = true

		// Act
		cfg := o.subtitleConfig()

		// Assert
		assert.Equal(t, style.FullSentence, cfg.MaxWords)
	})

	t.Run("should force SRT output when only subtitle files are wanted", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.srtOnly = true

		// Act
		cfg := o.subtitleConfig()

		// Assert
		assert.True(t, cfg.OutputSRT)
	})

	t.Run("should install a preset as the style for every speaker", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.preset = "tiktok_classic"
		preset, ok := style.PresetByName("tiktok_classic")
		require.True(t, ok)

		// Act
		cfg := o.subtitleConfig()

		// Assert
		require.Len(t, cfg.Speakers, 1)
		assert.Equal(t, "SPEAKER_00", cfg.Speakers[0].SpeakerID)
		assert.Equal(t, preset.Style, cfg.Speakers[0].Style)
	})
}

func TestGenerateOptionsTranscriberOptions(t *testing.T) {
	t.Run("should pass the requested device through", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()
		o.device = "cpu"

		// Act
		opts := o.transcriberOptions(zap.NewNop())

		// Assert
		assert.Equal(t, "cpu", opts.Device)
		assert.Equal(t, "medium", opts.Model)
		assert.Equal(t, "auto", opts.Language)
	})

	t.Run("should detect a device when none is requested", func(t *testing.T) {
		// Arrange
		o := defaultGenerateOptions()

		// Act
		opts := o.transcriberOptions(zap.NewNop())

		// Assert
		assert.Contains(t, []string{"cpu", "cuda"}, opts.Device)
	})

	t.Run("should prefer the flag token over the environment", func(t *testing.T) {
		// Arrange
		os.Setenv("HF_TOKEN", "env-token")
		defer os.Unsetenv("HF_TOKEN")
		o := defaultGenerateOptions()
		o.hfToken = "flag-token"

		// Act
		opts := o.transcriberOptions(zap.NewNop())

		// Assert
		assert.Equal(t, "flag-token", opts.HFToken)
	})

	t.Run("should fall back to the HF_TOKEN environment variable", func(t *testing.T) {
		// Arrange
		os.Setenv("HF_TOKEN", "env-token")
		defer os.Unsetenv("HF_TOKEN")
		o := defaultGenerateOptions()

		// Act
		opts := o.transcriberOptions(zap.NewNop())

		// Assert
		assert.Equal(t, "env-token", opts.HFToken)
	})
}
