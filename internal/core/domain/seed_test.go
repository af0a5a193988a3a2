package domain

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeedBundle_KnownMoods(t *testing.T) {
	for _, mood := range SeedMoods() {
		t.Run(mood, func(t *testing.T) {
			got := SeedBundle(mood)
			if diff := cmp.Diff(seedTable[mood], got); diff != "" {
				t.Fatalf("seed bundle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeedBundle_Happy(t *testing.T) {
	got := SeedBundle("happy")
	if got.Songs[0] != "Pharrell Williams – Happy" {
		t.Fatalf("songs[0]: got %q", got.Songs[0])
	}
	if got.Coffee != "Iced vanilla latte" {
		t.Fatalf("coffee: got %q", got.Coffee)
	}
}

func TestSeedBundle_KeyIsCaseInsensitive(t *testing.T) {
	if diff := cmp.Diff(SeedBundle("sad"), SeedBundle("  SAD ")); diff != "" {
		t.Fatalf("expected case-insensitive lookup (-want +got):\n%s", diff)
	}
}

func TestSeedBundle_CallerCannotMutateTable(t *testing.T) {
	b := SeedBundle("chill")
	b.Songs[0] = "overwritten"
	if SeedBundle("chill").Songs[0] == "overwritten" {
		t.Fatalf("seed table was mutated through a returned bundle")
	}
}

func TestSeedBundle_Synthesized(t *testing.T) {
	tests := []struct {
		name      string
		mood      string
		wantLabel string
		wantKey   string
	}{
		{name: "placeholder", mood: "mood", wantLabel: "Mood", wantKey: "mood"},
		{name: "empty", mood: "", wantLabel: "Mood", wantKey: "mood"},
		{name: "unknown word", mood: "unknownxyz", wantLabel: "Unknownxyz", wantKey: "unknownxyz"},
		{name: "original casing is title-cased", mood: "sLeEpY", wantLabel: "Sleepy", wantKey: "sleepy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeedBundle(tt.mood)

			want := Bundle{Coffee: DefaultCoffee}
			for i := 1; i <= 5; i++ {
				want.Songs = append(want.Songs, fmt.Sprintf("%s Vibes – Track %d", tt.wantLabel, i))
			}
			for i := 0; i < 4; i++ {
				want.Images = append(want.Images, fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", tt.wantKey, 600+i*10, 400+i*10))
			}
			for i := 1; i <= 3; i++ {
				want.Outfits = append(want.Outfits, fmt.Sprintf("%s fit %d", tt.wantLabel, i))
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("synthesized bundle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeedBundle_IsDeterministic(t *testing.T) {
	if diff := cmp.Diff(SeedBundle("Wistful"), SeedBundle("Wistful")); diff != "" {
		t.Fatalf("expected identical bundles (-first +second):\n%s", diff)
	}
}
