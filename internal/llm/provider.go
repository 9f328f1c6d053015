// Package llm generates the optional narrative intelligence report over
// finalized deal records. It is presentation-layer only: providers consume
// the records after scoring and can never influence them.
package llm

import (
	"context"

	"github.com/avolkov/dealbrief/internal/model"
)

// Provider is a chat-completion backend for report generation.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate produces a completion for the given request.
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is one completion request.
type Request struct {
	System    string
	Prompt    string
	Model     string
	MaxTokens int
}

// Response is a provider completion.
type Response struct {
	Content    string
	Model      string
	TokensUsed int
}

// maxPromptDeals caps how many records are serialized into the prompt to
// keep token usage bounded on large digests.
const maxPromptDeals = 25

// systemPrompt frames the analyst persona. Derived deal data is the only
// ground truth the model is given.
const systemPrompt = `You are an M&A intelligence analyst. You write concise,
professional deal intelligence reports for executives. Rules:
- Use only the structured deal data provided; never invent deals, values, or sources.
- Quantify where the data permits; avoid hedge words.
- Distinguish enterprise value from equity value from transaction value.
- Lead with conclusions, support with the specific deals that drive them.`

// Config holds provider settings.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// ConfigFromModel maps model.LLMConfig onto the provider config.
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		MaxTokens: cfg.MaxTokens,
	}
}
