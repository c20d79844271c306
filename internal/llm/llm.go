package llm

import (
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
)

// combines a TextGenerator and an Embedder into a single LLM
type CompositeLLM struct {
	TextGenerator
	Embedder
}

// creates a new LLM from the service configuration
func NewLLM(cfg *config.Config) (*CompositeLLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return NewLLMWithConfig(ConfigFrom(cfg))
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(config *Config) (*CompositeLLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if config.EmbedderAPIKey == "" {
		return nil, fmt.Errorf("embedder API key is required")
	}

	var textGenerator TextGenerator

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		textGenerator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	case ProviderOpenAI:
		textGenerator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	embedder := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:     config.EmbedderAPIKey,
		Model:      config.EmbedderModel,
		RetryLimit: config.RetryEmbeddings,
	})

	return &CompositeLLM{
		TextGenerator: textGenerator,
		Embedder:      embedder,
	}, nil
}
