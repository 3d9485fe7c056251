package wxr

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageDetector names the natural language a post is written in.
type LanguageDetector interface {
	Detect(text string) (isoCode string, ok bool)
}

// linguaDetector adapts lingua-go. Building it loads language models, so
// one instance is shared by a whole run.
type linguaDetector struct {
	detector lingua.LanguageDetector
}

// DefaultLanguages are the candidates considered when none are configured.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.Portuguese,
	lingua.Spanish,
	lingua.German,
	lingua.French,
	lingua.Dutch,
}

// NewLinguaDetector builds a detector restricted to languages.
func NewLinguaDetector(languages ...lingua.Language) LanguageDetector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			WithMinimumRelativeDistance(0.1).
			Build(),
	}
}

func (d *linguaDetector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
