package tts

import (
	"regexp"
	"strings"
)

const (
	slugMaxWords    = 4
	slugMaxLength   = 30
	slugPlaceholder = "audio"
)

var (
	// slugStrip removes everything except letters, digits, underscore,
	// whitespace, hyphen and apostrophe.
	slugStrip = regexp.MustCompile(`[^\p{L}\p{N}_\s'-]`)

	// slugSpaces collapses whitespace runs.
	slugSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename derives a safe, length-bounded file name fragment
// from input text: the first four words of the cleaned text joined by
// underscores, truncated to 30 characters with any dangling trailing
// underscore trimmed. Text with no usable characters yields "audio".
func SanitizeFilename(text string) string {
	cleaned := slugStrip.ReplaceAllString(text, "")
	cleaned = strings.TrimSpace(slugSpaces.ReplaceAllString(cleaned, " "))

	words := strings.Fields(cleaned)
	if len(words) > slugMaxWords {
		words = words[:slugMaxWords]
	}
	result := strings.Join(words, "_")

	if runes := []rune(result); len(runes) > slugMaxLength {
		result = strings.TrimRight(string(runes[:slugMaxLength]), "_")
	}
	if result == "" {
		return slugPlaceholder
	}
	return result
}
