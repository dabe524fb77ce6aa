package tts

import (
	"fmt"
	"regexp"
	"strings"
)

// adjustmentPattern matches signed percentage strings such as "+0%",
// "-25%" or "+150%". The synthesis service rejects anything else.
var adjustmentPattern = regexp.MustCompile(`^[+-]\d+%$`)

// ValidateAdjustment checks a rate or volume adjustment string.
func ValidateAdjustment(v string) error {
	if !adjustmentPattern.MatchString(v) {
		return fmt.Errorf("invalid adjustment %q: must look like +20%% or -25%%", v)
	}
	return nil
}

// ValidateText checks that text has speakable content.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}
