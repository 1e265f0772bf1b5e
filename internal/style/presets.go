package style

import (
	"strings"
)

// Preset is a ready-made look users can apply instead of hand-tuning thirty
// style attributes.
type Preset struct {
	Name        string
	Description string
	Style       SpeakerStyle
}

// DisplayName converts the preset's snake_case name for UI labels.
func (p Preset) DisplayName() string {
	words := strings.Split(p.Name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PresetPreview is the subset of attributes UIs show on a preset card.
// Colors are hex so pickers and swatches can use them directly.
type PresetPreview struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	FontFamily   string `json:"font_family"`
	FontSize     int    `json:"font_size"`
	PrimaryColor string `json:"primary_color"`
	OutlineColor string `json:"outline_color"`
	TextEffect   string `json:"text_effect"`
	AllCaps      bool   `json:"all_caps"`
	Bold         bool   `json:"bold"`
}

// Preview builds the card payload for one preset.
func (p Preset) Preview() PresetPreview {
	return PresetPreview{
		Name:         p.DisplayName(),
		Description:  p.Description,
		FontFamily:   p.Style.FontFamily.Name(),
		FontSize:     p.Style.FontSize,
		PrimaryColor: ToHexColor(p.Style.PrimaryColor),
		OutlineColor: ToHexColor(p.Style.OutlineColor),
		TextEffect:   string(p.Style.TextEffect),
		AllCaps:      p.Style.AllCaps,
		Bold:         p.Style.Bold,
	}
}

// Presets returns the built-in looks in display order.
func Presets() []Preset {
	return []Preset{
		{
			Name:        "tiktok_classic",
			Description: "Bold Impact font with black outline - perfect for TikTok",
			Style:       tiktokClassic(),
		},
		{
			Name:        "youtube_viral",
			Description: "Eye-catching yellow text for maximum attention",
			Style:       youtubeViral(),
		},
		{
			Name:        "instagram_reel",
			Description: "Modern style with trendy glow effect",
			Style:       instagramReel(),
		},
		{
			Name:        "podcast_clean",
			Description: "Clean, readable style for long-form content",
			Style:       podcastClean(),
		},
		{
			Name:        "gaming_streamer",
			Description: "High-energy style popular with gamers",
			Style:       gamingStreamer(),
		},
		{
			Name:        "minimalist",
			Description: "Simple, elegant styling for sophisticated content",
			Style:       minimalist(),
		},
		{
			Name:        "news_documentary",
			Description: "Professional style with background box",
			Style:       newsDocumentary(),
		},
		{
			Name:        "retro_vintage",
			Description: "Stylized retro look with unique flair",
			Style:       retroVintage(),
		},
	}
}

// PresetByName looks up a preset by its snake_case name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func tiktokClassic() SpeakerStyle {
	s := Default()
	s.FontFamily = FontImpact
	s.FontSize = 48
	s.OutlineWidth = 3.0
	s.HighlightColor = "&H0000FFFF"
	return s
}

func youtubeViral() SpeakerStyle {
	s := Default()
	s.FontFamily = FontAnton
	s.FontSize = 52
	s.PrimaryColor = "&H0000FFFF"
	s.HighlightColor = "&H000000FF"
	s.OutlineWidth = 3.0
	s.Animation = AnimationBounce
	s.FadeInDuration = 0.3
	s.FadeOutDuration = 0.2
	return s
}

func instagramReel() SpeakerStyle {
	s := Default()
	s.FontFamily = FontMontserratBlack
	s.FontSize = 44
	s.TextEffect = EffectGlow
	s.OutlineWidth = 2.0
	s.HighlightColor = "&H00B469FF"
	s.Animation = AnimationFadeIn
	s.FadeInDuration = 0.3
	s.FadeOutDuration = 0.2
	return s
}

func podcastClean() SpeakerStyle {
	s := Default()
	s.FontFamily = FontOpenSans
	s.FontSize = 36
	s.TextEffect = EffectShadow
	s.OutlineWidth = 2.0
	s.AllCaps = false
	s.MaxLineLength = 40
	s.HighlightColor = "&H00FFFF00"
	s.HighlightBold = false
	return s
}

func gamingStreamer() SpeakerStyle {
	s := Default()
	s.FontFamily = FontBebasNeue
	s.FontSize = 50
	s.PrimaryColor = "&H0000FF00"
	s.TextEffect = EffectDoubleOutline
	s.OutlineWidth = 2.0
	s.HighlightColor = "&H00FF00FF"
	s.Animation = AnimationBounce
	s.FadeInDuration = 0.3
	s.FadeOutDuration = 0.2
	return s
}

func minimalist() SpeakerStyle {
	s := Default()
	s.FontFamily = FontHelvetica
	s.FontSize = 38
	s.Bold = false
	s.FontWeight = "normal"
	s.TextEffect = EffectShadow
	s.OutlineWidth = 1.0
	s.AllCaps = false
	s.WordHighlighting = false
	s.Animation = AnimationFadeIn
	s.FadeInDuration = 0.2
	s.FadeOutDuration = 0.2
	return s
}

func newsDocumentary() SpeakerStyle {
	s := Default()
	s.FontFamily = FontArial
	s.FontSize = 34
	s.AllCaps = false
	s.TextEffect = EffectNone
	s.BackgroundBox = true
	s.BoxOpacity = 0.85
	s.HighlightBold = false
	s.HighlightColor = "&H0000FFFF"
	return s
}

func retroVintage() SpeakerStyle {
	s := Default()
	s.FontFamily = FontOswald
	s.FontSize = 46
	s.PrimaryColor = "&H004080FF"
	s.OutlineColor = "&H008000FF"
	s.TextEffect = EffectDropShadow
	s.OutlineWidth = 2.0
	s.LetterSpacing = 2.0
	s.Animation = AnimationPulse
	s.FadeInDuration = 0.4
	s.FadeOutDuration = 0.2
	return s
}
