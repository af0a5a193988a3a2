// Package openai provides the adapter for the external generation API. It asks
// for structured recommendation bundles and mood-board images, and reports
// failures as absent results so callers can fall back to static data.
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/kmod24/moodboard/internal/core/ports"
)

const (
	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultTextModel    = "gpt-4o-mini"
	DefaultImageModel   = "gpt-image-1"
	DefaultTextTimeout  = 45 * time.Second
	DefaultImageTimeout = 90 * time.Second
)

// Config is the read-only configuration injected into a Client.
type Config struct {
	APIKey       string
	BaseURL      string
	TextModel    string
	ImageModel   string
	MaxAttempts  int
	TextTimeout  time.Duration
	ImageTimeout time.Duration

	// HTTPClient is the base client whose transport is shared by every call.
	// Nil uses a client on http.DefaultTransport.
	HTTPClient *http.Client
}

type Client struct {
	cfg    Config
	caller *Caller
	logger *zap.Logger
}

// compile-time interface assertions
var (
	_ ports.TextRecommender  = (*Client)(nil)
	_ ports.ImageRecommender = (*Client)(nil)
)

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.TextTimeout <= 0 {
		cfg.TextTimeout = DefaultTextTimeout
	}
	if cfg.ImageTimeout <= 0 {
		cfg.ImageTimeout = DefaultImageTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	httpClient := base
	if cfg.APIKey != "" {
		// oauth2's transport adds "Authorization: Bearer <key>" to every request.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey}))
	}

	return &Client{
		cfg:    cfg,
		caller: NewCaller(httpClient, logger),
		logger: logger.Named("openai"),
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}
