package ports

import (
	"context"

	"github.com/kmod24/moodboard/internal/core/domain"
)

// TextRecommender asks an external generator for a structured bundle. The
// boolean is false when nothing usable came back; callers fall back rather than
// treating the zero bundle as meaningful.
type TextRecommender interface {
	FetchText(ctx context.Context, mood string) (domain.Bundle, bool)
}

// ImageRecommender asks an external generator for images. An empty result means
// nothing was generated.
type ImageRecommender interface {
	FetchImages(ctx context.Context, mood string, count int, size string) []string
}
