// Package ai handles AI-assisted copy drafting. A single Provider
// abstraction fronts the HTTP model API so the Drafter can be exercised
// with a fake in tests; the production implementation talks to the
// Anthropic Messages API.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider defines the interface a text-generation backend must implement.
type Provider interface {
	// Generate sends a prompt to the model and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "claude").
	Name() string
}

// ProviderConfig holds the credentials and settings for a provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ErrNoAPIKey is returned when generation is attempted without credentials.
var ErrNoAPIKey = errors.New("ai: API key not set")

// APIError carries a non-2xx response from the model API so callers can
// surface the status and body to the editor.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: API error (status %d): %s", e.Status, e.Body)
}
