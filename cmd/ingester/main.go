package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ingester",
	Short: "Product index ingestion tool",
	Long:  "CLI tool for building and inspecting the product index used by the chat server",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Configure(os.Getenv("ENVIRONMENT"), nil)
	},
	SilenceUsage: true,
}

var buildFlags = config.DefaultIngestFlags()

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the product index from scraped product records",
	Long: `Reads scraped product records, embeds them and persists the index.

Environment variables:
  OPENAI_API_KEY       OpenAI API key for embeddings (required)
  INDEX_BACKEND        snapshot, pgvector or qdrant (default: snapshot)
  INDEX_SNAPSHOT_PATH  snapshot directory (default: data/product_index)
  DATABASE_URL         postgres connection string (pgvector backend)
  QDRANT_HOST          Qdrant hostname (default: localhost)
  QDRANT_PORT          Qdrant gRPC port (default: 6334)`,
	RunE: runBuild,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of indexed documents",
	RunE:  runStats,
}

var queryTopK int

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a retrieval against the persisted index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	config.BindIngestFlags(buildCmd, &buildFlags)
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default: RETRIEVAL_TOP_K)")

	rootCmd.AddCommand(buildCmd, statsCmd, queryCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.ErrorErr(err, "ingester failed")
		os.Exit(1)
	}
}
