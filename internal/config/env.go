package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                 = "8080"
	defaultGeneratorProvider    = "anthropic"
	defaultGeneratorModel       = "claude-3-sonnet-20240229"
	defaultGeneratorTemperature = float32(0.3)
	defaultGeneratorMaxTokens   = 1024
	defaultModelTimeout         = 60 * time.Second
	defaultEmbedderModel        = "text-embedding-3-small"
	defaultTopK                 = 3
	defaultMaxProducts          = 3
	defaultProductTitle         = "BOHECO Product"
	defaultAssistantName        = "Assistant"
	defaultSnapshotPath         = "data/product_index"
	defaultQdrantHost           = "localhost"
	defaultQdrantPort           = 6334
	defaultQdrantCollection     = "products"
	defaultRateLimit            = "30-M"
)

// loads configuration from environment variables (and .env when present)
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromLookup(os.LookupEnv)
}

// builds a Config from an arbitrary lookup function
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}

		return fallback
	}

	p := &envParser{get: get}

	cfg := &Config{
		Environment:          get("ENVIRONMENT", "development"),
		Port:                 get("PORT", defaultPort),
		GeneratorProvider:    strings.ToLower(get("GENERATOR_PROVIDER", defaultGeneratorProvider)),
		GeneratorModel:       get("GENERATOR_MODEL", defaultGeneratorModel),
		GeneratorTemperature: p.float32("GENERATOR_TEMPERATURE", defaultGeneratorTemperature),
		GeneratorMaxTokens:   p.positiveInt("GENERATOR_MAX_TOKENS", defaultGeneratorMaxTokens),
		ModelTimeout:         p.duration("MODEL_TIMEOUT", defaultModelTimeout),
		AnthropicKey:         get("ANTHROPIC_API_KEY", ""),
		OpenAIKey:            get("OPENAI_API_KEY", ""),
		EmbedderModel:        get("EMBEDDER_MODEL", defaultEmbedderModel),
		TopK:                 p.positiveInt("RETRIEVAL_TOP_K", defaultTopK),
		MaxProducts:          p.positiveInt("MAX_PRODUCTS", defaultMaxProducts),
		DefaultProductTitle:  get("DEFAULT_PRODUCT_TITLE", defaultProductTitle),
		AssistantName:        get("ASSISTANT_NAME", defaultAssistantName),
		PromptTemplatePath:   get("PROMPT_TEMPLATE_PATH", ""),
		IndexBackend:         strings.ToLower(get("INDEX_BACKEND", BackendSnapshot)),
		SnapshotPath:         get("INDEX_SNAPSHOT_PATH", defaultSnapshotPath),
		DatabaseURL:          get("DATABASE_URL", ""),
		QdrantHost:           get("QDRANT_HOST", defaultQdrantHost),
		QdrantPort:           p.positiveInt("QDRANT_PORT", defaultQdrantPort),
		QdrantCollection:     get("QDRANT_COLLECTION", defaultQdrantCollection),
		CORSAllowedOrigins:   splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		RateLimit:            get("RATE_LIMIT", defaultRateLimit),
		AdminToken:           get("ADMIN_TOKEN", ""),
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	switch c.GeneratorProvider {
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
	case "openai":
	default:
		return fmt.Errorf("unsupported GENERATOR_PROVIDER: %s", c.GeneratorProvider)
	}

	switch c.IndexBackend {
	case BackendSnapshot:
		if c.SnapshotPath == "" {
			return fmt.Errorf("INDEX_SNAPSHOT_PATH environment variable is required")
		}
	case BackendPgvector:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case BackendQdrant:
	default:
		return fmt.Errorf("unsupported INDEX_BACKEND: %s", c.IndexBackend)
	}

	return nil
}

// reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// parses optional numeric settings, keeping the first invalid one
type envParser struct {
	get func(key, fallback string) string
	err error
}

func (p *envParser) fail(key, value, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("%s environment variable is invalid: %q is not %s", key, value, want)
	}
}

func (p *envParser) positiveInt(key string, fallback int) int {
	s := p.get(key, "")
	if s == "" {
		return fallback
	}

	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		p.fail(key, s, "a positive integer")
		return fallback
	}

	return v
}

func (p *envParser) float32(key string, fallback float32) float32 {
	s := p.get(key, "")
	if s == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v < 0 {
		p.fail(key, s, "a non-negative number")
		return fallback
	}

	return float32(v)
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	s := p.get(key, "")
	if s == "" {
		return fallback
	}

	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		p.fail(key, s, "a positive duration")
		return fallback
	}

	return v
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
