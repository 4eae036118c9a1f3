package cli

import (
	"github.com/spf13/cobra"

	"github.com/nmoreno/obligo/internal/api"
	"github.com/nmoreno/obligo/internal/config"
)

var (
	flagServer  string
	flagTimeout int
)

var rootCmd = &cobra.Command{
	Use:     "obligo",
	Short:   "Track legal obligations extracted from contracts",
	Long:    `Obligo uploads legal documents, extracts the obligations they contain and lets you review, edit and push them to an issue tracker.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend server URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(createIssueCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig merges the config file, environment and persistent flags.
func loadConfig() (*config.Config, error) {
	config.SetDefaults()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagTimeout > 0 {
		cfg.TimeoutSeconds = flagTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds an API client from the effective configuration.
func newClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.New(cfg.ServerURL, api.WithTimeout(cfg.Timeout())), cfg, nil
}
