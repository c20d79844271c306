package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
	"github.com/sushrutsadana/SalesChatAgent/internal/products"
)

// embeds the scraped products and persists them to the configured backend
func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	start := time.Now()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Info("starting product ingestion", "path", buildFlags.Path, "clear", buildFlags.Clear, "backend", cfg.IndexBackend)

	raws, err := products.LoadFile(buildFlags.Path)
	if err != nil {
		return err
	}

	docs := products.BuildDocuments(raws, cfg.DefaultProductTitle)
	if len(docs) == 0 {
		return fmt.Errorf("no products found in %s", buildFlags.Path)
	}

	logger.Info("built documents", "count", len(docs))

	store, err := index.NewStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open index store: %w", err)
	}
	defer store.Close() //nolint:errcheck // best-effort cleanup

	if buildFlags.Clear {
		logger.Info("clearing existing index")

		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear existing index: %w", err)
		}
	}

	handle, err := index.Build(ctx, newEmbedder(cfg), docs)
	if err != nil {
		return err
	}

	if err := store.Persist(ctx, handle); err != nil {
		return err
	}

	fmt.Printf("Indexed %d products (%d dimensions) in %s\n",
		handle.Len(), handle.Dimensions(), time.Since(start).Round(time.Millisecond))

	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	handle, closeStore, err := loadIndex(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if handle == nil {
		fmt.Println("No product index has been built")
		return nil
	}
	defer handle.Close() //nolint:errcheck // best-effort cleanup

	fmt.Printf("Backend:   %s\n", cfg.IndexBackend)
	fmt.Printf("Documents: %d\n", handle.Len())

	return nil
}

// ingestion retries rate-limited embedding batches; the chat server does not
func newEmbedder(cfg *config.Config) *llm.OpenAIEmbedder {
	return llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.EmbedderModel,
		RetryLimit: true,
	})
}

func loadIndex(ctx context.Context, cfg *config.Config) (index.Handle, func(), error) {
	store, err := index.NewStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index store: %w", err)
	}

	closeStore := func() {
		store.Close() //nolint:errcheck,gosec // best-effort cleanup
	}

	handle, err := store.Load(ctx)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	return handle, closeStore, nil
}
