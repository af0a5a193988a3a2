package openai

import (
	"strings"
	"unicode"
)

const maxPromptMoodRunes = 30

// sanitizeMood reduces user text to something safe to quote inside a prompt:
// letters, digits and hyphens separated by single spaces, at most 30 runes.
// Anything else, quote characters included, is treated as a separator.
func sanitizeMood(input string) string {
	var out strings.Builder
	lastSpace := true
	n := 0
	for _, r := range input {
		if n >= maxPromptMoodRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			out.WriteRune(r)
			lastSpace = false
			n++
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
			n++
		}
	}

	return fallbackIfEmpty(strings.TrimSpace(out.String()), "mood")
}

func fallbackIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
