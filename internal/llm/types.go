package llm

import "context"

// combines text generation and embedding generation
type LLM interface {
	TextGenerator
	Embedder
}

// represents different LLM providers
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// generates a completion for an assembled prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// single message sent to the generator
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // 0 uses the generator's configured value
}

type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// holds configuration for LLM initialization
type Config struct {
	// generator configuration
	GeneratorProvider    Provider
	GeneratorAPIKey      string
	GeneratorModel       string // e.g., "claude-3-sonnet-20240229"
	GeneratorMaxTokens   int
	GeneratorTemperature float32

	// embedder configuration
	EmbedderAPIKey string
	EmbedderModel  string // e.g., "text-embedding-3-small"

	// retry rate-limited embedding batches (ingestion only)
	RetryEmbeddings bool
}
