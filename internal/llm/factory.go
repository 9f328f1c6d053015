package llm

import (
	"strings"

	"github.com/rotisserie/eris"
)

// NewProvider creates a provider from configuration. An empty provider name
// means report generation is disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "":
		return nil, nil

	default:
		return nil, eris.Errorf("unknown LLM provider: %s (supported: openai, anthropic)", config.Provider)
	}
}
