package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zamorem/isdoc-gen/internal/config"
	"github.com/zamorem/isdoc-gen/internal/logger"
)

var version = "1.0.0"

// appConfig is set by Execute before any command runs.
var appConfig = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "isdoc-gen",
	Short: "isdoc-gen - generate ISDOC invoices from monthly billing files",
	Long: `isdoc-gen turns a billing-period description (line items billed by
man-days or by hours) and a supplier/recipient configuration into an ISDOC
electronic invoice with computed VAT, totals, issue and due dates.

Use "isdoc-gen generate" to write the .isdoc file and "isdoc-gen totals" to
preview the computed amounts.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("isdoc-gen executed without subcommand")

		_ = cmd.Help()
	},
}

// Execute runs the root command with settings loaded by main. A nil cfg
// keeps the defaults.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")

	if cfg != nil {
		appConfig = cfg
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
