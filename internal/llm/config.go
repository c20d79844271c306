package llm

import "github.com/sushrutsadana/SalesChatAgent/internal/config"

// derives LLM configuration from the service configuration
func ConfigFrom(cfg *config.Config) *Config {
	provider := Provider(cfg.GeneratorProvider)
	if provider == "" {
		provider = ProviderAnthropic
	}

	return &Config{
		GeneratorProvider:    provider,
		GeneratorAPIKey:      getAPIKeyForProvider(provider, cfg),
		GeneratorModel:       cfg.GeneratorModel,
		GeneratorMaxTokens:   cfg.GeneratorMaxTokens,
		GeneratorTemperature: cfg.GeneratorTemperature,
		EmbedderAPIKey:       cfg.OpenAIKey,
		EmbedderModel:        cfg.EmbedderModel,
	}
}
