package domain

import (
	"time"
	"unicode/utf8"
)

// MaxMoodWordLength bounds the mood word a user may submit.
const MaxMoodWordLength = 30

// MoodEntry is one journal entry together with the dayboard generated for it.
type MoodEntry struct {
	ID        string
	UserID    string
	MoodWord  string
	Note      string
	CreatedAt time.Time
	Bundle    Bundle
}

// MoodSummary is the list view of a MoodEntry.
type MoodSummary struct {
	ID        string    `json:"id"`
	MoodWord  string    `json:"mood_word"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateMoodWord checks the submitted length in runes, 1..30 as sent, and
// returns the trimmed word. Whitespace-only input passes and becomes "mood".
func ValidateMoodWord(word string) (string, error) {
	n := utf8.RuneCountInString(word)
	if n == 0 || n > MaxMoodWordLength {
		return "", ErrInvalidMood
	}
	return NormalizeMood(word), nil
}
