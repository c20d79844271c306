package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

// prints rank, score and url for the top matches of a query
func runQuery(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no product index has been built")
	}
	defer handle.Close() //nolint:errcheck // best-effort cleanup

	k := queryTopK
	if k <= 0 {
		k = cfg.TopK
	}

	client := retriever.NewClient(newEmbedder(cfg), cfg.TopK)

	nodes, err := client.QueryK(ctx, handle, strings.Join(args, " "), k)
	if err != nil {
		return err
	}

	if len(nodes) == 0 {
		fmt.Println("No matches")
		return nil
	}

	for _, node := range nodes {
		fmt.Printf("%d. %.4f  %s  %s\n", node.Rank, node.Score, node.Document.Metadata.Title, node.Document.Metadata.URL)
	}

	return nil
}
