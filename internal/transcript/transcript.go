package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Word is a single transcribed word with word-level timing as produced by
// WhisperX alignment. Speaker is empty when diarization did not label the word.
type Word struct {
	Text    string  `json:"word"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Validate checks if the Word has valid timing values
func (w *Word) Validate() error {
	if w.Text == "" {
		return fmt.Errorf("word text cannot be empty")
	}

	if w.Start < 0 {
		return fmt.Errorf("word start cannot be negative")
	}

	if w.End < w.Start {
		return fmt.Errorf("word end must not be before start")
	}

	return nil
}

// Segment is one transcription segment (a phrase or sentence boundary chosen
// by the transcriber) together with its word-level breakdown.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// Result is a complete word-level transcription for one audio input.
type Result struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
}

// Speakers returns the distinct speaker labels in first-appearance order.
func (r *Result) Speakers() []string {
	seen := make(map[string]struct{})
	var speakers []string

	for _, segment := range r.Segments {
		for _, word := range segment.Words {
			if word.Speaker == "" {
				continue
			}
			if _, ok := seen[word.Speaker]; ok {
				continue
			}
			seen[word.Speaker] = struct{}{}
			speakers = append(speakers, word.Speaker)
		}
	}

	return speakers
}

// WordCount returns the total number of words across all segments.
func (r *Result) WordCount() int {
	count := 0
	for _, segment := range r.Segments {
		count += len(segment.Words)
	}
	return count
}

// Parse decodes a word-level transcription result from r. Word text is
// whitespace-trimmed on ingestion and words without usable timing are
// dropped, so downstream grouping sees a clean time-ordered word stream.
func Parse(r io.Reader) (*Result, error) {
	var result Result
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transcription result: %w", err)
	}

	for i := range result.Segments {
		segment := &result.Segments[i]
		words := segment.Words[:0]
		for _, word := range segment.Words {
			word.Text = strings.TrimSpace(word.Text)
			if word.Text == "" {
				continue
			}
			// Alignment can leave numerals and symbols without timestamps.
			if word.End <= 0 && word.Start <= 0 {
				continue
			}
			words = append(words, word)
		}
		segment.Words = words
	}

	return &result, nil
}

// Load reads a transcription result from a JSON file on disk.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcription result %s: %w", path, err)
	}
	defer f.Close()

	result, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription result %s: %w", path, err)
	}

	return result, nil
}

// Save writes the transcription result as indented JSON, mirroring the
// transcriber's own output format so saved transcripts can be re-loaded.
func Save(path string, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcription result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcription result %s: %w", path, err)
	}

	return nil
}
