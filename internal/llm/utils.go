package llm

import "github.com/sushrutsadana/SalesChatAgent/internal/config"

// returns the appropriate API key for the given provider
func getAPIKeyForProvider(provider Provider, baseConfig *config.Config) string {
	switch provider {
	case ProviderOpenAI:
		return baseConfig.OpenAIKey
	default:
		return baseConfig.AnthropicKey
	}
}

// converts []float64 from the embeddings API to []float32
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}

	return f32
}
