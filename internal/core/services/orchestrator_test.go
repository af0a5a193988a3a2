package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kmod24/moodboard/internal/core/domain"
)

func generatedBundle() domain.Bundle {
	return domain.Bundle{
		Songs:   []string{"Gen – One", "Gen – Two"},
		Images:  []string{"neon street", "rainy window"},
		Outfits: []string{"Gen fit"},
		Coffee:  "Cold brew",
	}
}

// TestOrchestrator_BuildDayboard verifies field-level fallback.
func TestOrchestrator_BuildDayboard(t *testing.T) {
	tests := []struct {
		name     string
		mood     string
		text     *mockText
		images   *mockImages
		want     func(seed domain.Bundle) domain.Bundle
		wantProv Provenance
	}{
		{
			name:   "everything generated",
			mood:   "happy",
			text:   &mockText{bundle: generatedBundle(), ok: true},
			images: &mockImages{images: []string{"data:image/png;base64,AAA"}},
			want: func(seed domain.Bundle) domain.Bundle {
				return domain.Bundle{
					Songs:   []string{"Gen – One", "Gen – Two"},
					Images:  []string{"data:image/png;base64,AAA"},
					Outfits: []string{"Gen fit"},
					Coffee:  "Cold brew",
				}
			},
			wantProv: Provenance{Songs: SourceText, Images: SourceImage, Outfits: SourceText, Coffee: SourceText},
		},
		{
			name:   "no images falls back to text suggestions",
			mood:   "happy",
			text:   &mockText{bundle: generatedBundle(), ok: true},
			images: &mockImages{images: []string{}},
			want: func(seed domain.Bundle) domain.Bundle {
				b := generatedBundle()
				return b
			},
			wantProv: Provenance{Songs: SourceText, Images: SourceText, Outfits: SourceText, Coffee: SourceText},
		},
		{
			name:   "text absent uses seed for text fields",
			mood:   "sad",
			text:   &mockText{ok: false},
			images: &mockImages{images: []string{"data:image/png;base64,BBB"}},
			want: func(seed domain.Bundle) domain.Bundle {
				seed.Images = []string{"data:image/png;base64,BBB"}
				return seed
			},
			wantProv: Provenance{Songs: SourceSeed, Images: SourceImage, Outfits: SourceSeed, Coffee: SourceSeed},
		},
		{
			name: "partial text fills only non-empty fields",
			mood: "chill",
			text: &mockText{bundle: domain.Bundle{
				Songs:   []string{"Only – Song"},
				Images:  []string{},
				Outfits: []string{},
				Coffee:  "",
			}, ok: true},
			images: &mockImages{},
			want: func(seed domain.Bundle) domain.Bundle {
				seed.Songs = []string{"Only – Song"}
				return seed
			},
			wantProv: Provenance{Songs: SourceText, Images: SourceSeed, Outfits: SourceSeed, Coffee: SourceSeed},
		},
		{
			name:   "everything fails",
			mood:   "unknownxyz",
			text:   &mockText{ok: false},
			images: &mockImages{},
			want: func(seed domain.Bundle) domain.Bundle {
				return seed
			},
			wantProv: Provenance{Songs: SourceSeed, Images: SourceSeed, Outfits: SourceSeed, Coffee: SourceSeed},
		},
		{
			name: "oversized generated lists are capped",
			mood: "happy",
			text: &mockText{bundle: domain.Bundle{
				Songs:   []string{"1", "2", "3", "4", "5", "6"},
				Outfits: []string{"a", "b", "c", "d"},
				Coffee:  "Espresso",
			}, ok: true},
			images: &mockImages{images: []string{"i1", "i2", "i3", "i4", "i5"}},
			want: func(seed domain.Bundle) domain.Bundle {
				return domain.Bundle{
					Songs:   []string{"1", "2", "3", "4", "5"},
					Images:  []string{"i1", "i2", "i3", "i4"},
					Outfits: []string{"a", "b", "c"},
					Coffee:  "Espresso",
				}
			},
			wantProv: Provenance{Songs: SourceText, Images: SourceImage, Outfits: SourceText, Coffee: SourceText},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrchestrator(tc.text, tc.images, zaptest.NewLogger(t))

			got, prov := o.BuildDayboardWithProvenance(context.Background(), tc.mood)

			want := tc.want(domain.SeedBundle(tc.mood))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("bundle mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.wantProv, prov)
			assert.Equal(t, []string{tc.mood}, tc.text.calls)
			assert.Equal(t, 1, tc.images.calls)
			assert.Equal(t, domain.MaxImages, tc.images.lastCount)
			assert.Equal(t, "512x512", tc.images.lastSize)
		})
	}
}

func TestOrchestrator_NoCredentialEqualsSeed(t *testing.T) {
	o := NewOrchestrator(nil, nil, zaptest.NewLogger(t))

	moods := []string{"happy", "sad", "chill", "HAPPY", "  chill ", "unknownxyz", "", "   ", "Very Tired", "éclair"}
	for _, m := range moods {
		got := o.BuildDayboard(context.Background(), m)
		want := domain.SeedBundle(domain.NormalizeMood(m))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mood %q: bundle mismatch (-want +got):\n%s", m, diff)
		}
	}
}

func TestOrchestrator_BundleShapeInvariant(t *testing.T) {
	generators := []struct {
		name   string
		text   *mockText
		images *mockImages
	}{
		{name: "no credential"},
		{name: "all absent", text: &mockText{}, images: &mockImages{}},
		{name: "all generated", text: &mockText{bundle: generatedBundle(), ok: true}, images: &mockImages{images: []string{"x"}}},
	}
	moods := []string{"", " ", "\t\n", "happy", "sad", "chill", "unknownxyz", "a very long mood phrase indeed"}

	for _, g := range generators {
		var o *Orchestrator
		if g.text == nil {
			o = NewOrchestrator(nil, nil, nil)
		} else {
			o = NewOrchestrator(g.text, g.images, nil)
		}
		for _, m := range moods {
			b := o.BuildDayboard(context.Background(), m)
			require.NotNil(t, b.Songs, "%s/%q", g.name, m)
			require.NotNil(t, b.Images, "%s/%q", g.name, m)
			require.NotNil(t, b.Outfits, "%s/%q", g.name, m)
			assert.LessOrEqual(t, len(b.Songs), domain.MaxSongs)
			assert.LessOrEqual(t, len(b.Images), domain.MaxImages)
			assert.LessOrEqual(t, len(b.Outfits), domain.MaxOutfits)
			assert.NotEmpty(t, b.Coffee, "%s/%q", g.name, m)
		}
	}
}

func TestOrchestrator_HappyWithoutCredential(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil)
	b := o.BuildDayboard(context.Background(), "happy")

	assert.Equal(t, "Pharrell Williams – Happy", b.Songs[0])
	assert.Equal(t, "Iced vanilla latte", b.Coffee)
}

func TestOrchestrator_BlankMoodWithoutCredential(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil)
	b := o.BuildDayboard(context.Background(), "  ")

	require.Len(t, b.Songs, 5)
	for i, s := range b.Songs {
		assert.Equal(t, "Mood Vibes – Track "+string(rune('1'+i)), s)
	}
}

func TestOrchestrator_PassesNormalizedMood(t *testing.T) {
	text := &mockText{}
	o := NewOrchestrator(text, &mockImages{}, nil)

	o.BuildDayboard(context.Background(), "   ")
	o.BuildDayboard(context.Background(), "  Sleepy ")

	assert.Equal(t, []string{"mood", "Sleepy"}, text.calls)
}
