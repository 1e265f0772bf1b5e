package style

import (
	"fmt"
	"math/rand"
)

// speakerPalette holds the first ten auto-assigned speaker colors, chosen for
// contrast against video. Speakers beyond the palette get random bright
// colors.
var speakerPalette = []string{
	"&H000000FF", // red
	"&H0000FF00", // green
	"&H00FF0000", // blue
	"&H0000FFFF", // yellow
	"&H00FF00FF", // magenta
	"&H00FFFF00", // cyan
	"&H004080FF", // orange
	"&H008000FF", // purple
	"&H0000FF80", // lime
	"&H00FF8000", // pink
}

// SpeakerColors returns n visually distinct ASS colors for auto-styled
// speakers: the fixed palette first, then random colors bright enough to
// read over footage.
func SpeakerColors(n int) []string {
	colors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < len(speakerPalette) {
			colors = append(colors, speakerPalette[i])
			continue
		}
		colors = append(colors, randomBrightColor())
	}
	return colors
}

// randomBrightColor keeps every channel at 50 or above so the color never
// disappears into dark footage.
func randomBrightColor() string {
	r := 50 + rand.Intn(206)
	g := 50 + rand.Intn(206)
	b := 50 + rand.Intn(206)
	return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
}

// AutoSpeakerStyles builds a style per detected speaker when the user
// configured none: smaller bold text with a heavy outline, one palette color
// each, in the order the speakers first appear.
func AutoSpeakerStyles(speakers []string) []SpeakerConfig {
	colors := SpeakerColors(len(speakers))

	configs := make([]SpeakerConfig, 0, len(speakers))
	for i, id := range speakers {
		s := Default()
		s.FontSize = 32
		s.Bold = true
		s.OutlineWidth = 3.0
		s.PrimaryColor = colors[i]
		configs = append(configs, SpeakerConfig{SpeakerID: id, Style: s})
	}
	return configs
}

// NamedColor pairs a display name with its hex value for color pickers.
type NamedColor struct {
	Name string `json:"name"`
	Hex  string `json:"value"`
}

// NamedColors returns the curated picker palette in display order.
func NamedColors() []NamedColor {
	return []NamedColor{
		{Name: "White", Hex: "#FFFFFF"},
		{Name: "Yellow", Hex: "#FFFF00"},
		{Name: "Green", Hex: "#00FF00"},
		{Name: "Blue", Hex: "#0080FF"},
		{Name: "Magenta", Hex: "#FF00FF"},
		{Name: "Lime", Hex: "#80FF00"},
		{Name: "Pink", Hex: "#FF69B4"},
		{Name: "Orange", Hex: "#FFA500"},
		{Name: "Purple", Hex: "#800080"},
		{Name: "Cyan", Hex: "#00FFFF"},
	}
}
