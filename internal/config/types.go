package config

import "time"

// index backends
const (
	BackendSnapshot = "snapshot"
	BackendPgvector = "pgvector"
	BackendQdrant   = "qdrant"
)

// flat key-value configuration read once at startup
type Config struct {
	Environment string
	Port        string

	// model
	GeneratorProvider    string
	GeneratorModel       string
	GeneratorTemperature float32
	GeneratorMaxTokens   int
	ModelTimeout         time.Duration
	AnthropicKey         string
	OpenAIKey            string
	EmbedderModel        string

	// retrieval and response assembly
	TopK                int
	MaxProducts         int
	DefaultProductTitle string
	AssistantName       string
	PromptTemplatePath  string

	// index storage
	IndexBackend     string
	SnapshotPath     string
	DatabaseURL      string
	QdrantHost       string
	QdrantPort       int
	QdrantCollection string

	// http surface
	CORSAllowedOrigins []string
	RateLimit          string
	AdminToken         string
}

// ingester options shared by its subcommands
type Flags struct {
	Path  string
	Clear bool
}
