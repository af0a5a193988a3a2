package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/core/domain"
)

const systemPrompt = "Return only valid JSON."

const userPromptTemplate = `You are a mood stylist. Given the one-word mood "%s", produce concise recommendations.
Return STRICT JSON with keys:
- songs: array of 5 strings like "Artist – Title"
- images: array of 4 short scene prompts or aesthetic phrases
- outfits: array of 3 short outfit descriptions
- coffee: single string coffee drink
Return ONLY JSON, no extra text.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
}

// FetchText asks the chat endpoint for a recommendation bundle. ok is false
// when no credential is configured or anything about the call or its payload
// fails.
func (c *Client) FetchText(ctx context.Context, mood string) (domain.Bundle, bool) {
	if !c.Enabled() {
		return domain.Bundle{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.TextTimeout)
	defer cancel()

	payload := chatRequest{
		Model:          c.cfg.TextModel,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptTemplate, sanitizeMood(mood))},
		},
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("marshal chat request", zap.Error(err))
		return domain.Bundle{}, false
	}

	raw, ok := c.caller.Call(ctx, c.cfg.BaseURL+"/chat/completions", nil, body, c.cfg.MaxAttempts)
	if !ok {
		return domain.Bundle{}, false
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if content.Type != gjson.String {
		c.logger.Warn("chat response has no text content")
		return domain.Bundle{}, false
	}

	bundle, err := decodeBundle(content.String())
	if err != nil {
		c.logger.Warn("decode recommendation payload", zap.Error(err))
		return domain.Bundle{}, false
	}
	return bundle, true
}

// decodeBundle coerces a generated JSON object into a bundle: missing lists
// become empty, missing coffee becomes the default, lists are capped.
func decodeBundle(text string) (domain.Bundle, error) {
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		return domain.Bundle{}, fmt.Errorf("openai: payload is not valid JSON")
	}
	obj := gjson.Parse(text)
	if !obj.IsObject() {
		return domain.Bundle{}, fmt.Errorf("openai: payload is not a JSON object")
	}

	b := domain.Bundle{
		Songs:   stringList(obj.Get("songs")),
		Images:  stringList(obj.Get("images")),
		Outfits: stringList(obj.Get("outfits")),
		Coffee:  domain.DefaultCoffee,
	}
	if coffee := obj.Get("coffee"); coffee.Exists() {
		b.Coffee = scalarString(coffee)
	}
	return b.Clamp(), nil
}

// scalarString returns strings and numbers as text; objects, arrays, booleans
// and null become empty.
func scalarString(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return strings.TrimSpace(r.String())
	default:
		return ""
	}
}

// stringList accepts an array (items stringified, blanks dropped) or a lone
// scalar, which becomes a one-item list.
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.Exists() {
		return out
	}
	for _, item := range r.Array() {
		if item.IsObject() || item.IsArray() {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
