package transcriber

import "strings"

// DefaultModel balances accuracy against download size for first runs.
const DefaultModel = "medium"

// models lists every WhisperX checkpoint the engine accepts.
var models = []string{
	"tiny", "tiny.en", "base", "base.en", "small", "small.en",
	"medium", "medium.en", "large-v1", "large-v2", "large-v3",
	"large", "distil-large-v2", "distil-medium.en", "distil-small.en",
	"distil-large-v3", "large-v3-turbo", "turbo",
}

// languages lists the transcription language codes, with "auto" first for
// detection.
var languages = []string{
	"auto", "af", "am", "ar", "as", "az", "ba", "be", "bg", "bn", "bo",
	"br", "bs", "ca", "cs", "cy", "da", "de", "el", "en", "es", "et",
	"eu", "fa", "fi", "fo", "fr", "gl", "gu", "ha", "haw", "he", "hi",
	"hr", "ht", "hu", "hy", "id", "is", "it", "ja", "jw", "ka", "kk",
	"km", "kn", "ko", "la", "lb", "ln", "lo", "lt", "lv", "mg", "mi",
	"mk", "ml", "mn", "mr", "ms", "mt", "my", "ne", "nl", "nn", "no",
	"oc", "pa", "pl", "ps", "pt", "ro", "ru", "sa", "sd", "si", "sk",
	"sl", "sn", "so", "sq", "sr", "su", "sv", "sw", "ta", "te", "tg",
	"th", "tk", "tl", "tr", "tt", "uk", "ur", "uz", "vi", "yi", "yo", "zh",
}

// AllModels returns the supported model names.
func AllModels() []string {
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// AllLanguages returns the supported language codes.
func AllLanguages() []string {
	out := make([]string, len(languages))
	copy(out, languages)
	return out
}

// IsValidModel reports whether name is a supported checkpoint.
func IsValidModel(name string) bool {
	for _, m := range models {
		if m == name {
			return true
		}
	}
	return false
}

// IsValidLanguage reports whether code is a supported language (or "auto").
func IsValidLanguage(code string) bool {
	for _, l := range languages {
		if l == code {
			return true
		}
	}
	return false
}

// IsEnglishOnly reports whether the model transcribes English exclusively.
// Such models force language detection to English.
func IsEnglishOnly(model string) bool {
	return strings.HasSuffix(model, ".en")
}
