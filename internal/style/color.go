package style

import (
	"fmt"
	"regexp"
	"strings"
)

// ASS colors are &HAABBGGRR tagged strings: alpha-prefixed with the channel
// order reversed relative to web hex colors. Input conversion always forces
// the alpha byte to fully opaque (00); the "transparent" sentinel is the one
// exception and maps to fully transparent black.
const (
	ColorWhite       = "&H00FFFFFF"
	ColorBlack       = "&H00000000"
	ColorTransparent = "&HFF000000"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	assColorPattern = regexp.MustCompile(`^&H[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)
)

// ToASSColor normalizes a caller-supplied color to ASS form. Web hex colors
// (#RRGGBB) are converted with the channels reversed and an opaque alpha,
// values already in ASS form pass through uppercased, and anything
// unrecognized falls back to opaque white.
func ToASSColor(value string) string {
	value = strings.TrimSpace(value)

	if strings.EqualFold(value, "transparent") {
		return ColorTransparent
	}

	if hexColorPattern.MatchString(value) {
		r, g, b := value[1:3], value[3:5], value[5:7]
		return strings.ToUpper("&H00" + b + g + r)
	}

	if assColorPattern.MatchString(value) {
		return "&H" + strings.ToUpper(value[2:])
	}

	return ColorWhite
}

// ToHexColor converts an ASS color back to web hex form (#RRGGBB), dropping
// the alpha byte. Unrecognized input yields white.
func ToHexColor(assColor string) string {
	if !assColorPattern.MatchString(assColor) {
		return "#FFFFFF"
	}

	body := strings.ToUpper(assColor[2:])
	if len(body) == 8 {
		// Skip the alpha byte.
		body = body[2:]
	}

	b, g, r := body[0:2], body[2:4], body[4:6]
	return "#" + r + g + b
}

// IsValidColor reports whether value is an acceptable color input: web hex,
// ASS form, or the transparent sentinel.
func IsValidColor(value string) bool {
	value = strings.TrimSpace(value)
	return strings.EqualFold(value, "transparent") ||
		hexColorPattern.MatchString(value) ||
		assColorPattern.MatchString(value)
}

// withAlpha replaces the alpha byte of an ASS color. Opacity runs 0 (fully
// transparent) to 1 (fully opaque), matching the box opacity attribute.
func withAlpha(assColor string, opacity float64) string {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	alpha := int((1 - opacity) * 255)
	body := strings.ToUpper(assColor[2:])
	if len(body) == 8 {
		body = body[2:]
	}

	return fmt.Sprintf("&H%02X%s", alpha, body)
}
