package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/ports"
	"github.com/kmod24/moodboard/internal/metrics"
)

const dayboardImageSize = "512x512"

// Source names where a dayboard field came from.
type Source string

const (
	SourceText  Source = "text"
	SourceImage Source = "image"
	SourceSeed  Source = "seed"
)

// Provenance records the source of each dayboard field.
type Provenance struct {
	Songs   Source `json:"songs"`
	Images  Source `json:"images"`
	Outfits Source `json:"outfits"`
	Coffee  Source `json:"coffee"`
}

// Orchestrator composes the generators with the static seed table into a
// complete dayboard. It holds no mutable state and is safe for concurrent use.
type Orchestrator struct {
	text   ports.TextRecommender
	images ports.ImageRecommender
	logger *zap.Logger
}

// NewOrchestrator constructs an Orchestrator. Nil generators are skipped, which
// is how the service runs without a credential.
func NewOrchestrator(text ports.TextRecommender, images ports.ImageRecommender, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		text:   text,
		images: images,
		logger: logger,
	}
}

// BuildDayboard always returns a fully populated bundle for the raw mood text.
func (o *Orchestrator) BuildDayboard(ctx context.Context, raw string) domain.Bundle {
	b, _ := o.BuildDayboardWithProvenance(ctx, raw)
	return b
}

// BuildDayboardWithProvenance is BuildDayboard plus the source of each field.
func (o *Orchestrator) BuildDayboardWithProvenance(ctx context.Context, raw string) (domain.Bundle, Provenance) {
	// 1. Normalize and compute the fallback up front
	mood := domain.NormalizeMood(raw)
	seed := domain.SeedBundle(mood)

	// 2. Ask the generators; they are independent so run them together
	var (
		generated   domain.Bundle
		generatedOK bool
		images      []string
	)
	var g errgroup.Group
	if o.text != nil {
		g.Go(func() error {
			generated, generatedOK = o.text.FetchText(ctx, mood)
			return nil
		})
	}
	if o.images != nil {
		g.Go(func() error {
			images = o.images.FetchImages(ctx, mood, domain.MaxImages, dayboardImageSize)
			return nil
		})
	}
	_ = g.Wait()

	// 3. Field-level fallback
	var out domain.Bundle
	var prov Provenance
	out.Songs, prov.Songs = pickList(generated.Songs, generatedOK, seed.Songs)
	out.Outfits, prov.Outfits = pickList(generated.Outfits, generatedOK, seed.Outfits)
	out.Coffee, prov.Coffee = seed.Coffee, SourceSeed
	if generatedOK && generated.Coffee != "" {
		out.Coffee, prov.Coffee = generated.Coffee, SourceText
	}

	// 4. Images: generated images, then text suggestions, then seed
	if len(images) > 0 {
		out.Images, prov.Images = images, SourceImage
	} else {
		out.Images, prov.Images = pickList(generated.Images, generatedOK, seed.Images)
	}

	o.record(mood, prov)
	return out.Clamp(), prov
}

func pickList(generated []string, ok bool, seed []string) ([]string, Source) {
	if ok && len(generated) > 0 {
		return generated, SourceText
	}
	return seed, SourceSeed
}

func (o *Orchestrator) record(mood string, prov Provenance) {
	metrics.RecordDayboardField("songs", string(prov.Songs))
	metrics.RecordDayboardField("images", string(prov.Images))
	metrics.RecordDayboardField("outfits", string(prov.Outfits))
	metrics.RecordDayboardField("coffee", string(prov.Coffee))

	o.logger.Debug("dayboard built",
		zap.String("mood", mood),
		zap.String("songs", string(prov.Songs)),
		zap.String("images", string(prov.Images)),
		zap.String("outfits", string(prov.Outfits)),
		zap.String("coffee", string(prov.Coffee)))
}
