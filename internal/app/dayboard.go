// Package app wires configuration into the services shared by the API server
// and the command-line tool.
package app

import (
	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/adapters/openai"
	"github.com/kmod24/moodboard/internal/config"
	"github.com/kmod24/moodboard/internal/core/ports"
	"github.com/kmod24/moodboard/internal/core/services"
)

// NewOrchestrator builds the dayboard pipeline. Without an API key, or when
// offline is set, the pipeline serves seed bundles only.
func NewOrchestrator(cfg config.Config, offline bool, logger *zap.Logger) *services.Orchestrator {
	var (
		text   ports.TextRecommender
		images ports.ImageRecommender
	)
	if !offline && cfg.OpenAI.APIKey != "" {
		client := openai.NewClient(openai.Config{
			APIKey:       cfg.OpenAI.APIKey,
			BaseURL:      cfg.OpenAI.BaseURL,
			TextModel:    cfg.OpenAI.TextModel,
			ImageModel:   cfg.OpenAI.ImageModel,
			MaxAttempts:  cfg.OpenAI.MaxAttempts,
			TextTimeout:  cfg.OpenAI.TextTimeout,
			ImageTimeout: cfg.OpenAI.ImageTimeout,
		}, logger)
		text, images = client, client
		logger.Info("generation enabled",
			zap.String("text_model", cfg.OpenAI.TextModel),
			zap.String("image_model", cfg.OpenAI.ImageModel))
	} else {
		logger.Info("generation disabled, serving seed bundles")
	}
	return services.NewOrchestrator(text, images, logger)
}
