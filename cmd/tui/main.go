package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sushrutsadana/SalesChatAgent/internal/tui"
)

var endpoint string

var rootCmd = &cobra.Command{
	Use:          "saleschat-tui",
	Short:        "Terminal chat client for the product assistant",
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := tui.NewApp(tui.NewClient(endpoint))
		_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "chat server base URL (default: SALESCHAT_API_ENDPOINT or http://localhost:8080)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
