package style

// FontFamily identifies one of the closed set of supported display fonts.
type FontFamily string

const (
	FontImpact          FontFamily = "impact"
	FontArialBlack      FontFamily = "arial_black"
	FontBebasNeue       FontFamily = "bebas_neue"
	FontMontserratBlack FontFamily = "montserrat_black"
	FontOswald          FontFamily = "oswald"
	FontRobotoBlack     FontFamily = "roboto_black"
	FontAnton           FontFamily = "anton"
	FontBarlow          FontFamily = "barlow"
	FontLatoBlack       FontFamily = "lato_black"
	FontOpenSans        FontFamily = "open_sans"
	FontNunitoBlack     FontFamily = "nunito_black"
	FontArial           FontFamily = "arial"
	FontHelvetica       FontFamily = "helvetica"

	// FontFallback is applied for unrecognized caller-supplied font names.
	FontFallback = FontImpact
)

var fontNames = map[FontFamily]string{
	FontImpact:          "Impact",
	FontArialBlack:      "Arial Black",
	FontBebasNeue:       "Bebas Neue",
	FontMontserratBlack: "Montserrat Black",
	FontOswald:          "Oswald",
	FontRobotoBlack:     "Roboto Black",
	FontAnton:           "Anton",
	FontBarlow:          "Barlow",
	FontLatoBlack:       "Lato Black",
	FontOpenSans:        "Open Sans",
	FontNunitoBlack:     "Nunito Black",
	FontArial:           "Arial",
	FontHelvetica:       "Helvetica",
}

// fontAliases maps display names back to their identifiers so config captured
// from web frontends ("Arial Black") parses the same as snake_case input.
var fontAliases = map[string]FontFamily{}

func init() {
	for family, name := range fontNames {
		fontAliases[name] = family
	}
}

// ParseFontFamily maps a caller-supplied font name to a FontFamily,
// falling back to FontFallback for unknown names.
func ParseFontFamily(value string) FontFamily {
	if _, ok := fontNames[FontFamily(value)]; ok {
		return FontFamily(value)
	}
	if family, ok := fontAliases[value]; ok {
		return family
	}
	return FontFallback
}

// Name returns the renderer-facing font name for the style table.
func (f FontFamily) Name() string {
	if name, ok := fontNames[f]; ok {
		return name
	}
	return fontNames[FontFallback]
}

// AllFontFamilies returns the supported fonts in catalog order.
func AllFontFamilies() []FontFamily {
	return []FontFamily{
		FontImpact, FontArialBlack, FontBebasNeue, FontMontserratBlack,
		FontOswald, FontRobotoBlack, FontAnton, FontBarlow,
		FontLatoBlack, FontOpenSans, FontNunitoBlack, FontArial, FontHelvetica,
	}
}

// Position identifies one of the nine screen anchor points.
type Position string

const (
	PositionBottomLeft   Position = "bottom_left"
	PositionBottomCenter Position = "bottom_center"
	PositionBottomRight  Position = "bottom_right"
	PositionMiddleLeft   Position = "middle_left"
	PositionMiddleCenter Position = "middle_center"
	PositionMiddleRight  Position = "middle_right"
	PositionTopLeft      Position = "top_left"
	PositionTopCenter    Position = "top_center"
	PositionTopRight     Position = "top_right"

	// PositionFallback is applied for unrecognized position names.
	PositionFallback = PositionBottomCenter
)

// middle_left deliberately shares code 9 with top_right. The mapping is kept
// verbatim for output compatibility even though it looks like a latent bug;
// do not renumber without checking every player this output targets.
var positionAlignments = map[Position]int{
	PositionBottomLeft:   1,
	PositionBottomCenter: 2,
	PositionBottomRight:  3,
	PositionMiddleLeft:   9,
	PositionMiddleCenter: 5,
	PositionMiddleRight:  6,
	PositionTopLeft:      7,
	PositionTopCenter:    8,
	PositionTopRight:     9,
}

// ParsePosition maps a caller-supplied position name to a Position,
// falling back to PositionFallback for unknown names.
func ParsePosition(value string) Position {
	if _, ok := positionAlignments[Position(value)]; ok {
		return Position(value)
	}
	return PositionFallback
}

// Alignment returns the numeric anchor code used in the style table.
func (p Position) Alignment() int {
	if code, ok := positionAlignments[p]; ok {
		return code
	}
	return positionAlignments[PositionFallback]
}

// AllPositions returns the supported positions in catalog order.
func AllPositions() []Position {
	return []Position{
		PositionBottomLeft, PositionBottomCenter, PositionBottomRight,
		PositionMiddleLeft, PositionMiddleCenter, PositionMiddleRight,
		PositionTopLeft, PositionTopCenter, PositionTopRight,
	}
}

// TextEffect identifies a named border/shadow treatment.
type TextEffect string

const (
	EffectNone          TextEffect = "none"
	EffectGlow          TextEffect = "glow"
	EffectShadow        TextEffect = "shadow"
	EffectOutline       TextEffect = "outline"
	EffectOutlineGlow   TextEffect = "outline_glow"
	EffectDoubleOutline TextEffect = "double_outline"
	EffectDropShadow    TextEffect = "drop_shadow"

	// EffectFallback is applied for unrecognized effect names.
	EffectFallback = EffectOutline
)

var textEffects = map[TextEffect]struct{}{
	EffectNone: {}, EffectGlow: {}, EffectShadow: {}, EffectOutline: {},
	EffectOutlineGlow: {}, EffectDoubleOutline: {}, EffectDropShadow: {},
}

// ParseTextEffect maps a caller-supplied effect name to a TextEffect,
// falling back to EffectFallback for unknown names.
func ParseTextEffect(value string) TextEffect {
	if _, ok := textEffects[TextEffect(value)]; ok {
		return TextEffect(value)
	}
	return EffectFallback
}

// EffectParams derives the border geometry for an effect from the base
// outline width: effective outline width, effective shadow distance, and an
// optional outline color override (empty when the stored color applies).
// The derivation is pure; callers decide whether to apply it to a style.
func EffectParams(effect TextEffect, baseWidth float64) (outline, shadow float64, colorOverride string) {
	switch effect {
	case EffectNone:
		return 0, 0, ""
	case EffectOutline:
		return baseWidth, 0, ""
	case EffectShadow:
		return 0, baseWidth, ""
	case EffectGlow:
		return baseWidth * 2, 0, ColorWhite
	case EffectOutlineGlow:
		return baseWidth * 2, baseWidth, ""
	case EffectDoubleOutline:
		return baseWidth * 2, 0, ""
	case EffectDropShadow:
		return baseWidth, baseWidth * 2, ""
	default:
		return baseWidth, 0, ""
	}
}

// AllTextEffects returns the supported effects in catalog order.
func AllTextEffects() []TextEffect {
	return []TextEffect{
		EffectNone, EffectGlow, EffectShadow, EffectOutline,
		EffectOutlineGlow, EffectDoubleOutline, EffectDropShadow,
	}
}

// Animation identifies a named entrance animation.
type Animation string

const (
	AnimationNone       Animation = "none"
	AnimationFadeIn     Animation = "fade_in"
	AnimationSlideUp    Animation = "slide_up"
	AnimationScaleIn    Animation = "scale_in"
	AnimationTypeWriter Animation = "type_writer"
	AnimationBounce     Animation = "bounce"
	AnimationPulse      Animation = "pulse"

	// AnimationFallback is applied for unrecognized animation names.
	AnimationFallback = AnimationNone
)

var animations = map[Animation]struct{}{
	AnimationNone: {}, AnimationFadeIn: {}, AnimationSlideUp: {},
	AnimationScaleIn: {}, AnimationTypeWriter: {}, AnimationBounce: {},
	AnimationPulse: {},
}

// ParseAnimation maps a caller-supplied animation name to an Animation,
// falling back to AnimationFallback for unknown names.
func ParseAnimation(value string) Animation {
	if _, ok := animations[Animation(value)]; ok {
		return Animation(value)
	}
	return AnimationFallback
}

// AllAnimations returns the supported animations in catalog order.
func AllAnimations() []Animation {
	return []Animation{
		AnimationNone, AnimationFadeIn, AnimationSlideUp, AnimationScaleIn,
		AnimationTypeWriter, AnimationBounce, AnimationPulse,
	}
}
