package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "leela",
		Short: "CLI tool for the Leela wheel",
		Long: `leela is a CLI tool for the Leela fortune wheel.

It draws cards and inspects player locks through the JSON API, manages the
admin config, and prepares the quote catalog and image manifest offline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Token)
			client.verbose = cfg.Verbose
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: LEELA_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Admin token (env: LEELA_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Admin token file path (env: LEELA_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: LEELA_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newDrawCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newCountdownCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
