package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"OPENAI_API_KEY":    "sk-openai",
		"ANTHROPIC_API_KEY": "sk-ant",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "anthropic", cfg.GeneratorProvider)
	assert.Equal(t, "claude-3-sonnet-20240229", cfg.GeneratorModel)
	assert.InDelta(t, 0.3, cfg.GeneratorTemperature, 0.0001)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 3, cfg.MaxProducts)
	assert.Equal(t, "BOHECO Product", cfg.DefaultProductTitle)
	assert.Equal(t, BackendSnapshot, cfg.IndexBackend)
	assert.Equal(t, "data/product_index", cfg.SnapshotPath)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"OPENAI_API_KEY":        "sk-openai",
		"GENERATOR_PROVIDER":    "OpenAI",
		"GENERATOR_MODEL":       "gpt-4o-mini",
		"GENERATOR_TEMPERATURE": "0.7",
		"RETRIEVAL_TOP_K":       "5",
		"MODEL_TIMEOUT":         "15s",
		"INDEX_BACKEND":         "pgvector",
		"DATABASE_URL":          "postgres://localhost/products",
		"CORS_ALLOWED_ORIGINS":  "https://boheco.com, https://shop.boheco.com",
		"ENVIRONMENT":           "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.GeneratorProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
	assert.InDelta(t, 0.7, cfg.GeneratorTemperature, 0.0001)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 15*time.Second, cfg.ModelTimeout)
	assert.Equal(t, BackendPgvector, cfg.IndexBackend)
	assert.Equal(t, []string{"https://boheco.com", "https://shop.boheco.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestFromLookupRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "RETRIEVAL_TOP_K", value: "abc"},
		{key: "RETRIEVAL_TOP_K", value: "-2"},
		{key: "MAX_PRODUCTS", value: "lots"},
		{key: "GENERATOR_MAX_TOKENS", value: "0"},
		{key: "MODEL_TIMEOUT", value: "0"},
		{key: "MODEL_TIMEOUT", value: "soon"},
		{key: "GENERATOR_TEMPERATURE", value: "-1"},
		{key: "QDRANT_PORT", value: "port"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{
				"OPENAI_API_KEY":    "sk-openai",
				"ANTHROPIC_API_KEY": "sk-ant",
				tt.key:              tt.value,
			}))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key+" environment variable is invalid")
		})
	}
}

func TestFromLookupBlankValuesUseDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"OPENAI_API_KEY":    "sk-openai",
		"ANTHROPIC_API_KEY": "sk-ant",
		"RETRIEVAL_TOP_K":   "  ",
		"MODEL_TIMEOUT":     "",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
}

func TestFromLookupMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing openai key",
			env:     map[string]string{"ANTHROPIC_API_KEY": "sk-ant"},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "missing anthropic key",
			env:     map[string]string{"OPENAI_API_KEY": "sk-openai"},
			wantErr: "ANTHROPIC_API_KEY",
		},
		{
			name: "pgvector without database",
			env: map[string]string{
				"OPENAI_API_KEY":    "sk-openai",
				"ANTHROPIC_API_KEY": "sk-ant",
				"INDEX_BACKEND":     "pgvector",
			},
			wantErr: "DATABASE_URL",
		},
		{
			name: "unknown backend",
			env: map[string]string{
				"OPENAI_API_KEY":    "sk-openai",
				"ANTHROPIC_API_KEY": "sk-ant",
				"INDEX_BACKEND":     "faiss",
			},
			wantErr: "INDEX_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
