// Package subtitle turns timed word groups into dialogue events and writes
// the ASS and SRT tracks.
package subtitle

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"visub/internal/chunker"
	"visub/internal/style"
)

// Event is one dialogue row: a time span, the style that renders it, and the
// text with any inline override tags already applied.
type Event struct {
	Start float64
	End   float64
	Style string
	Text  string
}

// Synthesizer converts word groups into dialogue events, resolving each
// group's style and expanding highlighted groups into per-word events.
type Synthesizer struct {
	styles *style.StyleSet
	logger *zap.Logger
}

// NewSynthesizer creates a Synthesizer with a no-op logger.
func NewSynthesizer(styles *style.StyleSet) *Synthesizer {
	return NewSynthesizerWithLogger(styles, zap.NewNop())
}

// NewSynthesizerWithLogger creates a Synthesizer that traces its decisions.
func NewSynthesizerWithLogger(styles *style.StyleSet, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{styles: styles, logger: logger}
}

// Events builds the dialogue events for all groups in order. A group whose
// style has word highlighting becomes one event per word, each showing the
// full group text with the current word emphasized; otherwise the group
// becomes a single event.
func (s *Synthesizer) Events(groups []chunker.Group) []Event {
	var events []Event
	for _, g := range groups {
		if len(g.Words) == 0 {
			continue
		}

		name, resolved := s.styles.Resolve(g.Speaker)
		highlight := s.styles.Highlighting(resolved)

		var produced []Event
		if highlight {
			produced = highlightEvents(g, name, resolved)
		} else {
			produced = []Event{plainEvent(g, name, resolved)}
		}
		events = append(events, produced...)

		s.logger.Debug("group synthesized",
			zap.String("style", name),
			zap.Bool("highlight", highlight),
			zap.Int("events", len(produced)))
	}
	return events
}

// plainEvent renders the whole group as one dialogue row spanning the
// group's own word timings.
func plainEvent(g chunker.Group, name string, st style.SpeakerStyle) Event {
	text := g.Text()
	if st.AllCaps {
		text = strings.ToUpper(text)
	}
	return Event{
		Start: g.Start(),
		End:   g.End(),
		Style: name,
		Text:  st.AnimationTags() + text,
	}
}

// highlightEvents renders one event per word. Each event shows every word of
// the group, with the current one wrapped in highlight tags, and runs from
// that word's start to the next word's start so the text never flickers
// between words. The last event runs to its own word's end. Entrance
// animation tags go on the first event only; repeating them would replay the
// animation on every word change.
func highlightEvents(g chunker.Group, name string, st style.SpeakerStyle) []Event {
	words := make([]string, len(g.Words))
	for i, w := range g.Words {
		words[i] = displayWord(w.Text, st.AllCaps)
	}

	events := make([]Event, 0, len(g.Words))
	for i := range g.Words {
		start := roundCentis(g.Words[i].Start)
		var end float64
		if i+1 < len(g.Words) {
			end = roundCentis(g.Words[i+1].Start)
		} else {
			end = roundCentis(g.Words[i].End)
		}

		text := highlightText(words, i, st)
		if i == 0 {
			text = st.AnimationTags() + text
		}

		events = append(events, Event{Start: start, End: end, Style: name, Text: text})
	}
	return events
}

// highlightText joins the group's words, wrapping the active one in color
// (and optionally bold) override tags that reset to the style's primary
// color afterwards.
func highlightText(words []string, active int, st style.SpeakerStyle) string {
	parts := make([]string, len(words))
	for i, w := range words {
		if i != active {
			parts[i] = w
			continue
		}
		highlighted := `{\c` + st.HighlightColor + `}` + w + `{\c` + st.PrimaryColor + `}`
		if st.HighlightBold {
			highlighted = `{\b1}` + highlighted + `{\b0}`
		}
		parts[i] = highlighted
	}
	return strings.Join(parts, " ")
}

func displayWord(text string, allCaps bool) string {
	text = strings.TrimSpace(text)
	if allCaps {
		text = strings.ToUpper(text)
	}
	return text
}

// roundCentis snaps a timestamp to centisecond precision, the finest grain
// ASS timing carries. Rounding here keeps consecutive per-word events
// seamless instead of overlapping by sub-centisecond slivers.
func roundCentis(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}
