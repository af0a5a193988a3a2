package domain

import (
	"fmt"
	"net/url"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var seedTable = map[string]Bundle{
	"happy": {
		Songs: []string{
			"Pharrell Williams – Happy",
			"Daft Punk – Get Lucky",
			"Khalid – Better",
			"Dua Lipa – Levitating",
			"Lizzo – Good as Hell",
		},
		Images: []string{
			"https://picsum.photos/seed/sun/600/400",
			"https://picsum.photos/seed/yellow/600/400",
			"https://picsum.photos/seed/bright/600/400",
			"https://picsum.photos/seed/smile/600/400",
		},
		Outfits: []string{
			"Light denim + white tee + sneakers",
			"Linen shirt + chinos",
			"Pastel hoodie + shorts",
		},
		Coffee: "Iced vanilla latte",
	},
	"sad": {
		Songs: []string{
			"Adele – Someone Like You",
			"Joji – Slow Dancing in the Dark",
			"Billie Eilish – when the party's over",
			"Sam Smith – Too Good at Goodbyes",
			"The 1975 – Somebody Else",
		},
		Images: []string{
			"https://picsum.photos/seed/rain/600/400",
			"https://picsum.photos/seed/blue/600/400",
			"https://picsum.photos/seed/cloud/600/400",
			"https://picsum.photos/seed/window/600/400",
		},
		Outfits: []string{
			"Oversized hoodie + joggers",
			"Dark cardigan + tee",
			"Beanie + flannel",
		},
		Coffee: "Hot mocha",
	},
	"chill": {
		Songs: []string{
			"Lauv – I Like Me Better",
			"Kina – Get You the Moon",
			"Post Malone – Circles",
			"Rex Orange County – Sunflower",
			"Clairo – Sofia",
		},
		Images: []string{
			"https://picsum.photos/seed/chill/600/400",
			"https://picsum.photos/seed/soft/600/400",
			"https://picsum.photos/seed/lofi/600/400",
			"https://picsum.photos/seed/quiet/600/400",
		},
		Outfits: []string{
			"Crewneck + relaxed jeans",
			"Flannel + tee",
			"Quarter-zip + cargos",
		},
		Coffee: "Iced americano",
	},
}

// SeedMoods lists the moods that have a hand-written bundle.
func SeedMoods() []string {
	return []string{"happy", "sad", "chill"}
}

// SeedBundle returns the static fallback bundle for mood. Known moods map to a
// fixed bundle; anything else gets a bundle synthesized from the mood text.
func SeedBundle(mood string) Bundle {
	key := MoodKey(mood)
	if base, ok := seedTable[key]; ok {
		return base.Clamp()
	}

	if key == "" {
		key = placeholderMood
	}
	label := mood
	if label == "" {
		label = placeholderMood
	}
	label = cases.Title(language.Und).String(label)

	b := Bundle{
		Songs:   make([]string, 0, MaxSongs),
		Images:  make([]string, 0, MaxImages),
		Outfits: make([]string, 0, MaxOutfits),
		Coffee:  DefaultCoffee,
	}
	for i := 1; i <= MaxSongs; i++ {
		b.Songs = append(b.Songs, fmt.Sprintf("%s Vibes – Track %d", label, i))
	}
	for i := 0; i < MaxImages; i++ {
		b.Images = append(b.Images, fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", url.PathEscape(key), 600+i*10, 400+i*10))
	}
	for i := 1; i <= MaxOutfits; i++ {
		b.Outfits = append(b.Outfits, fmt.Sprintf("%s fit %d", label, i))
	}
	return b
}
