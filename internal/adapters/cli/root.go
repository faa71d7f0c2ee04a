package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	configPath    string
	characterName string
	keyID         string
	vCode         string
	proxyURL      string
	verbose       bool
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "eve-wallet",
		Short: "EVE wallet profit report",
		Long: `eve-wallet reads a character's wallet transactions from the EVE Online
XML API and prices every transaction against the reference market.

Configuration is read from config.yaml (., ./configs, ~/.eve-wallet),
EVE_* environment variables and a .env file, in increasing priority,
with command-line flags on top.

Examples:
  eve-wallet report --character "Kali Lin"
  eve-wallet report --format table --missing-quotes zero
  eve-wallet status
  eve-wallet quotes --type 34 --type 35
  eve-wallet config show`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, ~/.eve-wallet)")
	rootCmd.PersistentFlags().StringVar(&flags.characterName, "character", "",
		"Character name (overrides character.name)")
	rootCmd.PersistentFlags().StringVar(&flags.keyID, "key-id", "",
		"API key id (overrides character.key_id)")
	rootCmd.PersistentFlags().StringVar(&flags.vCode, "v-code", "",
		"API verification code (overrides character.v_code)")
	rootCmd.PersistentFlags().StringVar(&flags.proxyURL, "proxy", "",
		"HTTP proxy for API requests (overrides api.proxy_url)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(newReportCommand(flags))
	rootCmd.AddCommand(newStatusCommand(flags))
	rootCmd.AddCommand(newCharacterCommand(flags))
	rootCmd.AddCommand(newBalanceCommand(flags))
	rootCmd.AddCommand(newQuotesCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}
