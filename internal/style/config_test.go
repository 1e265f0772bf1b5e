package style

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordLimit_UnmarshalJSON(t *testing.T) {
	t.Run("should accept a plain number", func(t *testing.T) {
		var w WordLimit
		require.NoError(t, json.Unmarshal([]byte(`4`), &w))
		assert.Equal(t, WordLimit(4), w)
		assert.False(t, w.SentenceMode())
	})

	t.Run("should map full_sentence to sentence mode", func(t *testing.T) {
		var w WordLimit
		require.NoError(t, json.Unmarshal([]byte(`"full_sentence"`), &w))
		assert.Equal(t, FullSentence, w)
		assert.True(t, w.SentenceMode())
	})

	t.Run("should reject other strings", func(t *testing.T) {
		var w WordLimit
		err := json.Unmarshal([]byte(`"lots"`), &w)
		assert.ErrorContains(t, err, "unrecognized max_words")
	})

	t.Run("should round trip through JSON", func(t *testing.T) {
		data, err := json.Marshal(FullSentence)
		require.NoError(t, err)
		assert.Equal(t, `"full_sentence"`, string(data))

		data, err = json.Marshal(WordLimit(7))
		require.NoError(t, err)
		assert.Equal(t, `7`, string(data))
	})
}

func TestConfig_UnmarshalJSON(t *testing.T) {
	t.Run("should keep defaults for omitted settings", func(t *testing.T) {
		var cfg Config
		require.NoError(t, json.Unmarshal([]byte(`{"output_srt": true}`), &cfg))

		assert.Equal(t, WordLimit(4), cfg.MaxWords)
		assert.True(t, cfg.OutputSRT)
		assert.True(t, cfg.EnableSpeakerDetection)
		assert.True(t, cfg.EnableWordHighlighting)
		assert.Empty(t, cfg.Speakers)
	})

	t.Run("should preserve speaker order from the payload", func(t *testing.T) {
		payload := []byte(`{
			"max_words": "full_sentence",
			"speakers": [
				{"speaker_id": "SPEAKER_01", "primary_color": "#00FF00"},
				{"speaker_id": "SPEAKER_00", "primary_color": "#FF0000"}
			]
		}`)

		var cfg Config
		require.NoError(t, json.Unmarshal(payload, &cfg))

		require.Len(t, cfg.Speakers, 2)
		assert.Equal(t, "SPEAKER_01", cfg.Speakers[0].SpeakerID)
		assert.Equal(t, "SPEAKER_00", cfg.Speakers[1].SpeakerID)
		assert.Equal(t, "#00FF00", cfg.Speakers[0].Style.PrimaryColor)
		assert.Equal(t, 48, cfg.Speakers[0].Style.FontSize)
	})
}

func TestConfig_Validate(t *testing.T) {
	speaker := func(id string, mutate func(*SpeakerStyle)) SpeakerConfig {
		s := Default()
		if mutate != nil {
			mutate(&s)
		}
		return SpeakerConfig{SpeakerID: id, Style: s}
	}

	t.Run("should pass a default config", func(t *testing.T) {
		result := DefaultConfig().Validate()

		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("should reject a non-positive word limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxWords = 0

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "max_words must be positive")
	})

	t.Run("should warn on oversized word groups", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxWords = 60

		result := cfg.Validate()

		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "max_words of 60")
	})

	t.Run("should not warn in sentence mode", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxWords = FullSentence

		result := cfg.Validate()

		assert.True(t, result.Valid)
		assert.Empty(t, result.Warnings)
	})

	t.Run("should require speaker IDs", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{speaker("", nil)}

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, "speaker 0: speaker_id is required")
	})

	t.Run("should reject duplicate speaker IDs", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{speaker("SPEAKER_00", nil), speaker("SPEAKER_00", nil)}

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, `duplicate speaker_id "SPEAKER_00"`)
	})

	t.Run("should bound font sizes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{
			speaker("SPEAKER_00", func(s *SpeakerStyle) { s.FontSize = 4 }),
			speaker("SPEAKER_01", func(s *SpeakerStyle) { s.FontSize = 120 }),
		}

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("should reject malformed colors", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{
			speaker("SPEAKER_00", func(s *SpeakerStyle) { s.PrimaryColor = "reddish" }),
		}

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, `speaker "SPEAKER_00": invalid primary_color "reddish"`)
	})

	t.Run("should reject unknown positions", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{
			speaker("SPEAKER_00", func(s *SpeakerStyle) { s.Position = "floating" }),
		}

		result := cfg.Validate()

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, `speaker "SPEAKER_00": unknown position "floating"`)
	})

	t.Run("should warn about unknown fonts instead of failing", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Speakers = []SpeakerConfig{
			speaker("SPEAKER_00", func(s *SpeakerStyle) { s.FontFamily = "comic_sans" }),
		}

		result := cfg.Validate()

		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], `unknown font "comic_sans"`)
	})
}
