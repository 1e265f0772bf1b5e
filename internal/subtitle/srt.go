package subtitle

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"visub/internal/chunker"
)

// WriteSRT renders the plain-text fallback track: one numbered entry per
// group, original casing preserved, with the speaker label prefixed in
// brackets when the group has one.
func WriteSRT(w io.Writer, groups []chunker.Group) error {
	var b strings.Builder

	index := 1
	for _, g := range groups {
		if len(g.Words) == 0 {
			continue
		}

		text := g.Text()
		if g.Speaker != "" {
			text = "[" + g.Speaker + "] " + text
		}

		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			index, formatSRTTime(g.Start()), formatSRTTime(g.End()), text)
		index++
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write SRT track: %w", err)
	}
	return nil
}

// SaveSRT writes the fallback track to a file.
func SaveSRT(path string, groups []chunker.Group) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SRT file: %w", err)
	}
	defer f.Close()

	if err := WriteSRT(f, groups); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize SRT file: %w", err)
	}
	return nil
}

// formatSRTTime renders seconds as HH:MM:SS,mmm with truncating components.
func formatSRTTime(seconds float64) string {
	h := int(seconds / 3600)
	m := int(math.Mod(seconds, 3600) / 60)
	s := int(math.Mod(seconds, 60))
	ms := int((seconds - math.Trunc(seconds)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
