package domain

import "strings"

const (
	MaxSongs   = 5
	MaxImages  = 4
	MaxOutfits = 3
)

// DefaultCoffee is used whenever a generated bundle omits the coffee field.
const DefaultCoffee = "Latte"

// placeholderMood stands in for blank mood text.
const placeholderMood = "mood"

// Bundle is the four-field recommendation result handed back for a mood.
type Bundle struct {
	Songs   []string `json:"songs"`
	Images  []string `json:"images"`
	Outfits []string `json:"outfits"`
	Coffee  string   `json:"coffee"`
}

// Clamp truncates every list to its cap and replaces nil lists with empty ones,
// so the bundle always serialises with all four fields present.
func (b Bundle) Clamp() Bundle {
	return Bundle{
		Songs:   capList(b.Songs, MaxSongs),
		Images:  capList(b.Images, MaxImages),
		Outfits: capList(b.Outfits, MaxOutfits),
		Coffee:  b.Coffee,
	}
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// MoodKey is the lookup form of free-text mood input: trimmed and lower-cased.
func MoodKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// NormalizeMood trims raw input and substitutes "mood" for blank text.
func NormalizeMood(raw string) string {
	mood := strings.TrimSpace(raw)
	if mood == "" {
		return placeholderMood
	}
	return mood
}
