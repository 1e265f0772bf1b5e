package style

import (
	"go.uber.org/zap"
)

// DefaultStyleName is the ASS style name for text no custom style claims.
const DefaultStyleName = "Default"

// StyleSet is the frozen result of one config: every style normalized, effect
// geometry applied, and the speaker order locked in. Built once per job and
// read-only afterwards, so lookups need no locking.
type StyleSet struct {
	defaultStyle SpeakerStyle
	ids          []string
	names        map[string]string
	styles       map[string]SpeakerStyle
	detection    bool
	highlighting bool
	logger       *zap.Logger
}

// NewStyleSet builds a StyleSet with a no-op logger.
func NewStyleSet(cfg Config) *StyleSet {
	return NewStyleSetWithLogger(cfg, zap.NewNop())
}

// NewStyleSetWithLogger builds the immutable style set from a config. Each
// speaker style is normalized and gets its text effect folded into the
// outline/shadow fields here, in one pass; nothing mutates styles after this.
// When speaker detection is off and custom styles exist, the first configured
// style also becomes the default so unattributed text matches it.
func NewStyleSetWithLogger(cfg Config, logger *zap.Logger) *StyleSet {
	if logger == nil {
		logger = zap.NewNop()
	}

	set := &StyleSet{
		defaultStyle: Default().applyEffect(),
		names:        make(map[string]string, len(cfg.Speakers)),
		styles:       make(map[string]SpeakerStyle, len(cfg.Speakers)),
		detection:    cfg.EnableSpeakerDetection,
		highlighting: cfg.EnableWordHighlighting,
		logger:       logger,
	}

	for _, sp := range cfg.Speakers {
		if sp.SpeakerID == "" {
			continue
		}
		if _, exists := set.styles[sp.SpeakerID]; exists {
			logger.Warn("ignoring duplicate speaker style", zap.String("speaker", sp.SpeakerID))
			continue
		}
		set.ids = append(set.ids, sp.SpeakerID)
		set.names[sp.SpeakerID] = "Speaker_" + sp.SpeakerID
		set.styles[sp.SpeakerID] = sp.Style.normalized().applyEffect()
	}

	if !set.detection && len(set.ids) > 0 {
		set.defaultStyle = set.styles[set.ids[0]]
		logger.Debug("speaker detection disabled, first custom style promoted to default",
			zap.String("speaker", set.ids[0]))
	}

	logger.Debug("style set built",
		zap.Int("custom_styles", len(set.ids)),
		zap.Bool("speaker_detection", set.detection),
		zap.Bool("word_highlighting", set.highlighting))

	return set
}

// Resolve maps a word group's speaker label to the style that should render
// it. Precedence: a style configured for that exact speaker; otherwise the
// first configured style when detection is off; otherwise the first
// configured style for missing or unknown speakers; otherwise the default.
func (s *StyleSet) Resolve(speaker string) (string, SpeakerStyle) {
	var (
		name  string
		style SpeakerStyle
		rule  string
	)

	switch {
	case speaker != "" && s.hasStyle(speaker):
		name = s.names[speaker]
		style = s.styles[speaker]
		rule = "speaker match"
	case len(s.ids) > 0 && !s.detection:
		name = s.names[s.ids[0]]
		style = s.styles[s.ids[0]]
		rule = "detection disabled"
	case len(s.ids) > 0:
		name = s.names[s.ids[0]]
		style = s.styles[s.ids[0]]
		rule = "first configured fallback"
	default:
		name = DefaultStyleName
		style = s.defaultStyle
		rule = "default"
	}

	s.logger.Debug("resolved speaker style",
		zap.String("speaker", speaker),
		zap.String("style", name),
		zap.String("rule", rule))

	return name, style
}

// Highlighting reports whether a group rendered with the given style should
// get per-word karaoke events. Both the job flag and the style's own flag
// must be on.
func (s *StyleSet) Highlighting(style SpeakerStyle) bool {
	return s.highlighting && style.WordHighlighting
}

// DefaultStyle returns the style applied to unclaimed text, after any
// first-speaker promotion.
func (s *StyleSet) DefaultStyle() SpeakerStyle {
	return s.defaultStyle
}

// SpeakerIDs returns the configured speaker IDs in insertion order.
func (s *StyleSet) SpeakerIDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// ASSStyleLines renders the [V4+ Styles] rows: the default style first, then
// every configured speaker style in insertion order.
func (s *StyleSet) ASSStyleLines() []string {
	lines := make([]string, 0, len(s.ids)+1)
	lines = append(lines, s.defaultStyle.ASSStyleLine(DefaultStyleName))
	for _, id := range s.ids {
		lines = append(lines, s.styles[id].ASSStyleLine(s.names[id]))
	}
	return lines
}

func (s *StyleSet) hasStyle(speaker string) bool {
	_, ok := s.styles[speaker]
	return ok
}
