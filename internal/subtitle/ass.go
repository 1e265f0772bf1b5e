package subtitle

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"visub/internal/style"
)

// assHeader opens every script: a 1280x720 canvas with scaled borders so
// styles look the same regardless of the video's native resolution.
const assHeader = `[Script Info]
Title: Word-by-Word Subtitles
ScriptType: v4.00+
WrapStyle: 0
ScaledBorderAndShadow: yes
PlayResX: 1280
PlayResY: 720
YCbCr Matrix: None

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
`

const assEventsFormat = `Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text`

// WriteASS renders the full script: header, one style row per configured
// style, then every dialogue event in order.
func WriteASS(w io.Writer, styles *style.StyleSet, events []Event) error {
	var b strings.Builder

	b.WriteString(assHeader)
	for _, line := range styles.ASSStyleLines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n[Events]\n")
	b.WriteString(assEventsFormat)
	b.WriteByte('\n')

	for _, e := range events {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			formatASSTime(e.Start), formatASSTime(e.End), e.Style, escapeASSText(e.Text))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write ASS track: %w", err)
	}
	return nil
}

// SaveASS writes the script to a file.
func SaveASS(path string, styles *style.StyleSet, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ASS file: %w", err)
	}
	defer f.Close()

	if err := WriteASS(f, styles, events); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize ASS file: %w", err)
	}
	return nil
}

// formatASSTime renders seconds as H:MM:SS.CC. Components truncate rather
// than round so an event never spills into the next second.
func formatASSTime(seconds float64) string {
	h := int(seconds / 3600)
	m := int(math.Mod(seconds, 3600) / 60)
	s := int(math.Mod(seconds, 60))
	cs := int((seconds - math.Trunc(seconds)) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// escapeASSText converts literal newlines to the ASS line-break escape.
func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", `\N`)
}
