package style

import (
	"encoding/json"
	"fmt"
)

// FullSentence is the word limit value that switches grouping from fixed
// windows to sentence boundaries. Any limit at or above it means "break on
// punctuation instead of counting words".
const FullSentence WordLimit = 999

// WordLimit is the per-group word cap. It decodes from either a number or
// the string "full_sentence".
type WordLimit int

func (w *WordLimit) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*w = WordLimit(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("max_words must be a number or \"full_sentence\"")
	}
	if s != "full_sentence" {
		return fmt.Errorf("unrecognized max_words value %q", s)
	}
	*w = FullSentence
	return nil
}

func (w WordLimit) MarshalJSON() ([]byte, error) {
	if w.SentenceMode() {
		return json.Marshal("full_sentence")
	}
	return json.Marshal(int(w))
}

// SentenceMode reports whether grouping should follow sentence punctuation.
func (w WordLimit) SentenceMode() bool {
	return w >= FullSentence
}

// SpeakerConfig binds a diarization speaker ID to its style.
type SpeakerConfig struct {
	SpeakerID string
	Style     SpeakerStyle
}

// UnmarshalJSON decodes the flat speaker dict: the speaker_id key plus the
// style attributes at the same level. Decoded separately because the style's
// default-overlay decoder would otherwise swallow the ID.
func (c *SpeakerConfig) UnmarshalJSON(data []byte) error {
	var id struct {
		SpeakerID string `json:"speaker_id"`
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("failed to decode speaker entry: %w", err)
	}

	var s SpeakerStyle
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	c.SpeakerID = id.SpeakerID
	c.Style = s
	return nil
}

func (c SpeakerConfig) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(c.Style)
	if err != nil {
		return nil, err
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	flat["speaker_id"] = c.SpeakerID

	return json.Marshal(flat)
}

// Config is one subtitle job's settings: grouping, output options, and the
// ordered per-speaker styles. Order matters: the first configured speaker is
// the fallback style when a word's speaker has no style of its own.
type Config struct {
	MaxWords               WordLimit       `json:"max_words"`
	OutputSRT              bool            `json:"output_srt"`
	EnableSpeakerDetection bool            `json:"enable_speaker_detection"`
	EnableWordHighlighting bool            `json:"enable_word_highlighting"`
	Speakers               []SpeakerConfig `json:"speakers"`
}

// DefaultConfig returns the settings used when the caller supplies nothing:
// four-word groups, speaker detection and highlighting on, no SRT.
func DefaultConfig() Config {
	return Config{
		MaxWords:               4,
		EnableSpeakerDetection: true,
		EnableWordHighlighting: true,
	}
}

// UnmarshalJSON overlays the payload on DefaultConfig so omitted settings
// keep their defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	decoded := plain(DefaultConfig())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode subtitle config: %w", err)
	}
	*c = Config(decoded)
	return nil
}

// ValidationResult reports configuration problems without aborting: hard
// errors make the config unusable, warnings flag settings that work but
// probably read badly on screen.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks the config before any styles are built. Color and position
// checks run against the raw values because normalization silently falls back
// on bad input, which is the wrong behavior for a config the user is editing.
func (c Config) Validate() ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if c.MaxWords <= 0 {
		result.Errors = append(result.Errors, "max_words must be positive")
	} else if c.MaxWords > 50 && !c.MaxWords.SentenceMode() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("max_words of %d may produce hard-to-read subtitle groups", c.MaxWords))
	}

	seen := make(map[string]bool, len(c.Speakers))
	for i, sp := range c.Speakers {
		if sp.SpeakerID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("speaker %d: speaker_id is required", i))
			continue
		}
		if seen[sp.SpeakerID] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate speaker_id %q", sp.SpeakerID))
		}
		seen[sp.SpeakerID] = true

		result.Errors = append(result.Errors, validateStyle(sp.SpeakerID, sp.Style)...)
		result.Warnings = append(result.Warnings, styleWarnings(sp.SpeakerID, sp.Style)...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateStyle(id string, s SpeakerStyle) []string {
	var errs []string

	if s.FontSize < 8 || s.FontSize > 100 {
		errs = append(errs, fmt.Sprintf("speaker %q: font_size must be between 8 and 100", id))
	}

	colors := []struct {
		field string
		value string
	}{
		{"primary_color", s.PrimaryColor},
		{"outline_color", s.OutlineColor},
		{"shadow_color", s.ShadowColor},
		{"background_color", s.BackgroundColor},
		{"highlight_color", s.HighlightColor},
		{"highlight_outline_color", s.HighlightOutlineColor},
	}
	for _, c := range colors {
		if !IsValidColor(c.value) {
			errs = append(errs, fmt.Sprintf("speaker %q: invalid %s %q", id, c.field, c.value))
		}
	}

	if _, ok := positionAlignments[s.Position]; !ok {
		errs = append(errs, fmt.Sprintf("speaker %q: unknown position %q", id, s.Position))
	}

	return errs
}

// styleWarnings covers attributes that render fine but not as the user asked:
// unknown fonts, effects, and animations all fall back to working defaults.
func styleWarnings(id string, s SpeakerStyle) []string {
	var warns []string

	if _, ok := fontNames[s.FontFamily]; !ok {
		if _, aliased := fontAliases[string(s.FontFamily)]; !aliased {
			warns = append(warns, fmt.Sprintf("speaker %q: unknown font %q, using %s", id, s.FontFamily, FontFallback.Name()))
		}
	}
	if !knownEffect(s.TextEffect) {
		warns = append(warns, fmt.Sprintf("speaker %q: unknown text_effect %q, using %s", id, s.TextEffect, EffectFallback))
	}
	if !knownAnimation(s.Animation) {
		warns = append(warns, fmt.Sprintf("speaker %q: unknown animation %q, using %s", id, s.Animation, AnimationFallback))
	}

	return warns
}

func knownEffect(e TextEffect) bool {
	for _, known := range AllTextEffects() {
		if e == known {
			return true
		}
	}
	return false
}

func knownAnimation(a Animation) bool {
	for _, known := range AllAnimations() {
		if a == known {
			return true
		}
	}
	return false
}
