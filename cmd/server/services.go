package main

import (
	"context"
	"fmt"

	"github.com/sushrutsadana/SalesChatAgent/internal/chat"
	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/prompt"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	llmClient, err := llm.NewLLM(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	assembler, err := prompt.Load(cfg.PromptTemplatePath, cfg.AssistantName)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	store, err := index.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open index store: %w", err)
	}

	retrieverClient := retriever.NewClient(llmClient, cfg.TopK)

	chatService := chat.NewService(store, retrieverClient, assembler, llmClient, chat.Options{
		MaxProducts:  cfg.MaxProducts,
		DefaultTitle: cfg.DefaultProductTitle,
		ModelTimeout: cfg.ModelTimeout,
	})

	return &Services{
		LLM:       llmClient,
		Store:     store,
		Retriever: retrieverClient,
		Chat:      chatService,
	}, nil
}
