package detector

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// SupportedLanguages are the classroom languages the detector chooses between.
var SupportedLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
}

var (
	languageDetector lingua.LanguageDetector
	detectorOnce     sync.Once
)

// minDetectRunes is the shortest text worth running detection on.
const minDetectRunes = 20

func sharedDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(SupportedLanguages...).
			Build()
	})
	return languageDetector
}

// DetectLanguage returns the lowercase ISO 639-1 code of the text's language,
// or "" when the text is too short or the result is not reliable.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minDetectRunes {
		return ""
	}

	lang, ok := sharedDetector().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
