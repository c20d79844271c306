package config

import "github.com/spf13/cobra"

const defaultProductsPath = "data/products.json"

// returns default flags for product ingestion
func DefaultIngestFlags() Flags {
	return Flags{Path: defaultProductsPath, Clear: false}
}

// registers --path and --clear on an ingester subcommand
func BindIngestFlags(cmd *cobra.Command, flags *Flags) {
	defaults := DefaultIngestFlags()

	cmd.Flags().StringVar(&flags.Path, "path", defaults.Path, "path to scraped products JSON file")
	cmd.Flags().BoolVar(&flags.Clear, "clear", defaults.Clear, "remove the existing index before building")
}
