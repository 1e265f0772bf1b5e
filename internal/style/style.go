package style

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SpeakerStyle is the full visual treatment for one speaker's subtitles: font,
// colors, placement, decorations, border geometry, transforms, entrance
// animation, background box, text policy, and the word-highlight sub-style.
// Values are plain data; construction and normalization happen in Config.
type SpeakerStyle struct {
	FontFamily FontFamily `json:"font_family"`
	FontSize   int        `json:"font_size"`
	FontWeight string     `json:"font_weight"`

	PrimaryColor    string `json:"primary_color"`
	OutlineColor    string `json:"outline_color"`
	ShadowColor     string `json:"shadow_color"`
	BackgroundColor string `json:"background_color"`

	Position       Position `json:"position"`
	MarginLeft     int      `json:"margin_left"`
	MarginRight    int      `json:"margin_right"`
	MarginVertical int      `json:"margin_vertical"`

	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
	StrikeOut bool `json:"strikeout"`

	OutlineWidth   float64    `json:"outline_width"`
	ShadowDistance float64    `json:"shadow_distance"`
	TextEffect     TextEffect `json:"text_effect"`

	LetterSpacing float64 `json:"letter_spacing"`
	LineSpacing   float64 `json:"line_spacing"`
	ScaleX        float64 `json:"scale_x"`
	ScaleY        float64 `json:"scale_y"`
	Rotation      float64 `json:"rotation"`

	Animation       Animation `json:"animation"`
	FadeInDuration  float64   `json:"fade_in_duration"`
	FadeOutDuration float64   `json:"fade_out_duration"`

	BackgroundBox bool    `json:"background_box"`
	BoxPadding    int     `json:"box_padding"`
	BoxOpacity    float64 `json:"box_opacity"`
	BorderStyle   int     `json:"border_style"`

	AllCaps       bool `json:"all_caps"`
	WordWrap      bool `json:"word_wrap"`
	MaxLineLength int  `json:"max_line_length"`

	WordHighlighting      bool   `json:"enable_word_highlighting"`
	HighlightColor        string `json:"highlight_color"`
	HighlightOutlineColor string `json:"highlight_outline_color"`
	HighlightBold         bool   `json:"highlight_bold"`
}

// Default returns the baseline style: bold white Impact with a black outline,
// anchored bottom-center, karaoke highlighting in yellow.
func Default() SpeakerStyle {
	return SpeakerStyle{
		FontFamily:            FontImpact,
		FontSize:              48,
		FontWeight:            "bold",
		PrimaryColor:          ColorWhite,
		OutlineColor:          ColorBlack,
		ShadowColor:           "&H80000000",
		BackgroundColor:       ColorBlack,
		Position:              PositionBottomCenter,
		MarginLeft:            20,
		MarginRight:           20,
		MarginVertical:        40,
		Bold:                  true,
		OutlineWidth:          3.0,
		ShadowDistance:        2.0,
		TextEffect:            EffectOutline,
		LineSpacing:           1.0,
		ScaleX:                100.0,
		ScaleY:                100.0,
		Animation:             AnimationNone,
		BoxPadding:            10,
		BoxOpacity:            0.8,
		BorderStyle:           1,
		AllCaps:               true,
		WordWrap:              true,
		MaxLineLength:         30,
		WordHighlighting:      true,
		HighlightColor:        "&H0000FFFF",
		HighlightOutlineColor: ColorBlack,
		HighlightBold:         true,
	}
}

// UnmarshalJSON decodes a style on top of the defaults so absent attributes
// keep their documented default values rather than zeroing out.
func (s *SpeakerStyle) UnmarshalJSON(data []byte) error {
	type plain SpeakerStyle
	decoded := plain(Default())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to decode speaker style: %w", err)
	}
	*s = SpeakerStyle(decoded)
	return nil
}

// normalized returns a copy with every closed-set attribute mapped through
// its parser (unknown names fall back to the named defaults) and every color
// converted to ASS form. Called once during config construction.
func (s SpeakerStyle) normalized() SpeakerStyle {
	s.FontFamily = ParseFontFamily(string(s.FontFamily))
	s.Position = ParsePosition(string(s.Position))
	s.TextEffect = ParseTextEffect(string(s.TextEffect))
	s.Animation = ParseAnimation(string(s.Animation))

	s.PrimaryColor = ToASSColor(s.PrimaryColor)
	s.OutlineColor = ToASSColor(s.OutlineColor)
	s.ShadowColor = ToASSColor(s.ShadowColor)
	s.BackgroundColor = ToASSColor(s.BackgroundColor)
	s.HighlightColor = ToASSColor(s.HighlightColor)
	s.HighlightOutlineColor = ToASSColor(s.HighlightOutlineColor)

	return s
}

// applyEffect returns a copy with the text effect's derived border geometry
// written into the outline/shadow fields. Separate from normalized so the
// stored attributes stay caller-visible until the config freezes the style.
func (s SpeakerStyle) applyEffect() SpeakerStyle {
	outline, shadow, override := EffectParams(s.TextEffect, s.OutlineWidth)
	s.OutlineWidth = outline
	s.ShadowDistance = shadow
	if override != "" {
		s.OutlineColor = override
	}
	return s
}

// ASSStyleLine serializes the style into one 23-field V4+ style row. The four
// color slots carry primary, background, outline, and shadow in that order;
// an enabled background box switches to an opaque-box border style and folds
// the box opacity into the last slot's alpha byte.
func (s SpeakerStyle) ASSStyleLine(name string) string {
	borderStyle := s.BorderStyle
	backColor := s.ShadowColor
	if s.BackgroundBox {
		borderStyle = 3
		backColor = withAlpha(s.BackgroundColor, s.BoxOpacity)
	}

	fields := []string{
		name,
		s.FontFamily.Name(),
		strconv.Itoa(s.FontSize),
		s.PrimaryColor,
		s.BackgroundColor,
		s.OutlineColor,
		backColor,
		boolFlag(s.Bold),
		boolFlag(s.Italic),
		boolFlag(s.Underline),
		boolFlag(s.StrikeOut),
		formatFloat(s.ScaleX),
		formatFloat(s.ScaleY),
		formatFloat(s.LetterSpacing),
		formatFloat(s.Rotation),
		strconv.Itoa(borderStyle),
		formatFloat(s.OutlineWidth),
		formatFloat(s.ShadowDistance),
		strconv.Itoa(s.Position.Alignment()),
		strconv.Itoa(s.MarginLeft),
		strconv.Itoa(s.MarginRight),
		strconv.Itoa(s.MarginVertical),
		"1",
	}

	return "Style: " + strings.Join(fields, ",")
}

// AnimationTags builds the inline override tags for the style's entrance
// animation. Fade durations are carried in milliseconds; no animation, or
// zero fade durations on both ends, yields no tags.
func (s SpeakerStyle) AnimationTags() string {
	if s.Animation == AnimationNone {
		return ""
	}

	fadeIn := int(s.FadeInDuration * 1000)
	fadeOut := int(s.FadeOutDuration * 1000)
	if fadeIn == 0 && fadeOut == 0 {
		return ""
	}

	fade := fmt.Sprintf(`{\fad(%d,%d)}`, fadeIn, fadeOut)

	switch s.Animation {
	case AnimationFadeIn:
		return fade
	case AnimationSlideUp:
		return fmt.Sprintf(`{\move(320,400,320,350,0,%d)}`, fadeIn) + fade
	case AnimationScaleIn:
		return fmt.Sprintf(`{\t(0,%d,\fscx100\fscy100)}{\fscx50\fscy50}`, fadeIn) + fade
	case AnimationBounce:
		third := fadeIn / 3
		return fmt.Sprintf(`{\t(0,%d,\fscx120\fscy120)}{\t(%d,%d,\fscx90\fscy90)}{\t(%d,%d,\fscx100\fscy100)}`,
			third, third, third*2, third*2, fadeIn) + fade
	case AnimationPulse:
		half := fadeIn / 2
		return fmt.Sprintf(`{\t(0,%d,\fscx110\fscy110)}{\t(%d,%d,\fscx100\fscy100)}`,
			half, half, fadeIn) + fade
	case AnimationTypeWriter:
		// Reveal-by-character is not implemented; a plain fade stands in.
		return fade
	default:
		return ""
	}
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// formatFloat renders style-row numerics the way players expect: integral
// values without a decimal point, fractional values as written.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
