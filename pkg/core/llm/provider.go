// Package llm wraps the text-generation backends the advisory service can use.
package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned when a provider has no credentials configured.
var ErrMissingAPIKey = errors.New("API_KEY_MISSING")

// Provider is the interface for all LLM providers.
type Provider interface {
	// GenerateResponse sends one prompt and returns the model's text.
	// Recognised options: "model" (string), "temperature" (float64),
	// "response_format" ("json" or "text").
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

func optString(options map[string]interface{}, key, fallback string) string {
	if val, ok := options[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

func optFloat(options map[string]interface{}, key string, fallback float64) float64 {
	switch val := options[key].(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	}
	return fallback
}

// wantsJSON reports whether the caller asked for a JSON-only reply.
func wantsJSON(options map[string]interface{}) bool {
	return optString(options, "response_format", "text") == "json"
}
