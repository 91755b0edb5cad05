package fatvo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxInputRunes bounds the length of a single question.
const MaxInputRunes = 4000

// ValidateInput checks a user question before it is recorded. It returns
// the trimmed text.
func ValidateInput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("question is empty: %w", ErrValidation)
	}
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("question is not valid UTF-8: %w", ErrValidation)
	}
	if n := utf8.RuneCountInString(text); n > MaxInputRunes {
		return "", fmt.Errorf("question has %d characters, limit is %d: %w", n, MaxInputRunes, ErrValidation)
	}
	return text, nil
}
