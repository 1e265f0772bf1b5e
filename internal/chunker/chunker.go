// Package chunker splits word-level transcripts into the small timed groups
// that become individual subtitle events.
package chunker

import (
	"strings"

	"go.uber.org/zap"

	"visub/internal/style"
	"visub/internal/transcript"
)

// sentenceWordCap bounds sentence-mode groups so a speaker who never lands a
// sentence still gets readable subtitles.
const sentenceWordCap = 50

// sentenceEnders are the characters that close a group in sentence mode.
var sentenceEnders = ".!?:;"

// Group is one subtitle's worth of consecutive words from a single segment.
// The speaker is taken from the group's first word.
type Group struct {
	Words   []transcript.Word
	Speaker string
}

// Start returns the group's onset time.
func (g Group) Start() float64 {
	return g.Words[0].Start
}

// End returns the group's offset time.
func (g Group) End() float64 {
	return g.Words[len(g.Words)-1].End
}

// Text joins the group's words with single spaces.
func (g Group) Text() string {
	parts := make([]string, len(g.Words))
	for i, w := range g.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Chunker walks transcript segments and cuts them into groups, either as
// fixed word-count windows or along sentence punctuation.
type Chunker struct {
	limit  style.WordLimit
	logger *zap.Logger
}

// NewChunker creates a Chunker with a no-op logger.
func NewChunker(limit style.WordLimit) *Chunker {
	return NewChunkerWithLogger(limit, zap.NewNop())
}

// NewChunkerWithLogger creates a Chunker that traces each group decision.
// A limit below one word would never close a window, so it is raised to one.
func NewChunkerWithLogger(limit style.WordLimit, logger *zap.Logger) *Chunker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit < 1 {
		limit = 1
	}
	return &Chunker{limit: limit, logger: logger}
}

// Chunk cuts every segment of the transcript into groups. Groups never span
// segment boundaries, so silence between segments never gets folded into a
// subtitle's display window. Segments without words contribute nothing.
func (c *Chunker) Chunk(res *transcript.Result) []Group {
	var groups []Group
	for _, seg := range res.Segments {
		if len(seg.Words) == 0 {
			continue
		}
		if c.limit.SentenceMode() {
			groups = append(groups, c.chunkBySentence(seg.Words)...)
		} else {
			groups = append(groups, c.chunkByCount(seg.Words)...)
		}
	}

	c.logger.Debug("transcript chunked",
		zap.Int("segments", len(res.Segments)),
		zap.Int("groups", len(groups)),
		zap.Bool("sentence_mode", c.limit.SentenceMode()))

	return groups
}

// chunkByCount cuts a segment into fixed-size windows. The final group keeps
// whatever remainder is left, which is how a seven-word segment at four words
// per group becomes groups of four and three.
func (c *Chunker) chunkByCount(words []transcript.Word) []Group {
	size := int(c.limit)
	groups := make([]Group, 0, (len(words)+size-1)/size)

	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		g := newGroup(words[start:end])
		groups = append(groups, g)

		c.logGroup(g, "word limit")
	}
	return groups
}

// chunkBySentence accumulates words until one ends with sentence punctuation,
// with a hard cap for speech that never closes a sentence. Trailing words
// after the last boundary still form a group.
func (c *Chunker) chunkBySentence(words []transcript.Word) []Group {
	var groups []Group
	start := 0

	for i, w := range words {
		count := i - start + 1
		boundary := endsSentence(w.Text)
		if !boundary && count < sentenceWordCap {
			continue
		}

		g := newGroup(words[start : i+1])
		groups = append(groups, g)
		start = i + 1

		reason := "sentence boundary"
		if !boundary {
			reason = "sentence cap"
		}
		c.logGroup(g, reason)
	}

	if start < len(words) {
		g := newGroup(words[start:])
		groups = append(groups, g)
		c.logGroup(g, "segment end")
	}

	return groups
}

func (c *Chunker) logGroup(g Group, reason string) {
	c.logger.Debug("group closed",
		zap.String("reason", reason),
		zap.Int("words", len(g.Words)),
		zap.Float64("start", g.Start()),
		zap.Float64("end", g.End()),
		zap.String("speaker", g.Speaker))
}

func newGroup(words []transcript.Word) Group {
	return Group{Words: words, Speaker: words[0].Speaker}
}

func endsSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(sentenceEnders, rune(trimmed[len(trimmed)-1]))
}
