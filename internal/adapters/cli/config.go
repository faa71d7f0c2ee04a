package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect eve-wallet configuration.

Configuration is loaded from multiple sources with priority:
1. Command-line flags
2. Environment variables (EVE_* prefix, .env file)
3. Config file (config.yaml)
4. Default values

Examples:
  eve-wallet config show
  EVE_CHARACTER_NAME="Kali Lin" eve-wallet config show`,
	}

	cmd.AddCommand(newConfigShowCommand(flags))

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Display the effective configuration. The verification code is masked.

Example:
  eve-wallet config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			file := cfg.File
			if file == "" {
				file = "(none)"
			}

			fmt.Fprintln(out, "eve-wallet Configuration")
			fmt.Fprintln(out, "========================")
			fmt.Fprintf(out, "Config file:        %s\n", file)

			fmt.Fprintln(out, "\nCharacter:")
			fmt.Fprintf(out, "  Name:             %s\n", valueOrUnset(cfg.Character.Name))
			fmt.Fprintf(out, "  Key ID:           %s\n", valueOrUnset(cfg.Character.KeyID))
			fmt.Fprintf(out, "  vCode:            %s\n", valueOrUnset(cfg.Character.Credentials().MaskedVCode()))

			fmt.Fprintln(out, "\nAPI:")
			fmt.Fprintf(out, "  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Fprintf(out, "  Market URL:       %s\n", cfg.API.MarketURL)
			fmt.Fprintf(out, "  Reference system: %s\n", cfg.API.ReferenceSystemID)
			fmt.Fprintf(out, "  Proxy:            %s\n", valueOrUnset(cfg.API.ProxyURL))
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.API.Timeout)
			fmt.Fprintf(out, "  Max Retries:      %d (backoff %s)\n", cfg.API.Retry.MaxAttempts, cfg.API.Retry.BackoffBase)

			fmt.Fprintln(out, "\nReport:")
			fmt.Fprintf(out, "  Missing quotes:   %s\n", cfg.Report.MissingQuotePolicy)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Report.Format)
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Report.Timeout)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
