package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const defaultImageSize = "512x512"

const imagePromptTemplate = "Aesthetic mood board for the mood '%s'. Minimal, photographic, editorial style."

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

// FetchImages asks the image endpoint for count images and returns them as
// inline data URIs. Any failure yields an empty slice.
func (c *Client) FetchImages(ctx context.Context, mood string, count int, size string) []string {
	out := []string{}
	if !c.Enabled() || count <= 0 {
		return out
	}
	if size == "" {
		size = defaultImageSize
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ImageTimeout)
	defer cancel()

	body, err := json.Marshal(imageRequest{
		Model:          c.cfg.ImageModel,
		Prompt:         fmt.Sprintf(imagePromptTemplate, sanitizeMood(mood)),
		N:              count,
		Size:           size,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		c.logger.Error("marshal image request", zap.Error(err))
		return out
	}

	raw, ok := c.caller.Call(ctx, c.cfg.BaseURL+"/images/generations", nil, body, c.cfg.MaxAttempts)
	if !ok {
		return out
	}

	data := gjson.GetBytes(raw, "data")
	if !data.IsArray() {
		c.logger.Warn("image response has no data array")
		return out
	}

	for i, entry := range data.Array() {
		if i >= count {
			break
		}
		b64 := entry.Get("b64_json")
		if b64.Type != gjson.String || b64.String() == "" {
			continue
		}
		out = append(out, "data:image/png;base64,"+b64.String())
	}
	return out
}
