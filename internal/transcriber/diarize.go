package transcriber

import (
	"math"

	"visub/internal/transcript"
)

// SimulateSpeakers assigns two alternating demo speakers to every word,
// switching roughly every ten seconds. It stands in for real diarization
// when no HuggingFace token is available, so speaker styling can still be
// exercised end to end.
func SimulateSpeakers(res *transcript.Result) {
	for si := range res.Segments {
		words := res.Segments[si].Words
		for wi := range words {
			if math.Mod(words[wi].Start, 20) < 10 {
				words[wi].Speaker = "SPEAKER_00"
			} else {
				words[wi].Speaker = "SPEAKER_01"
			}
		}
	}
}
