package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zamorem/isdoc-gen/internal/isdoc"
	"github.com/zamorem/isdoc-gen/internal/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an ISDOC invoice for one billing period",
	Long: `Read the supplier/recipient configuration and the invoice file for one
billing month, compute line amounts, VAT, totals, issue and due dates, and
write the ISDOC document next to the invoice file (same base name, .isdoc
extension).

The issue date is the last day of the billing month in the current year.
VAT (21 %) applies only when the supplier has a tax_id.

Environment variables:
  ISDOC_CONFIG - Default configuration file when --config is not given
  ISDOC_COUNTRY - Country code for addresses without one (default CZ)
  ISDOC_ISSUING_SYSTEM - Value of the IssuingSystem element`,
	Example: `  # Write invoices/2026-03.isdoc
  isdoc-gen generate --config company.yaml --invoice invoices/2026-03.yaml

  # Write to a custom path
  isdoc-gen generate -c company.yaml -i march.yaml -o out/faktura.isdoc

  # Print the document instead of writing it
  isdoc-gen generate -c company.yaml -i march.yaml --stdout`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addInputFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Output file path (default: beside the invoice file)")
	generateCmd.Flags().Bool("stdout", false, "Write the document to stdout instead of a file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	configPath, invoicePath, err := inputPaths(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	if outputPath == "" {
		outputPath = isdoc.FileName(invoicePath)
	}

	log.Info().
		Str("config", configPath).
		Str("invoice", invoicePath).
		Str("output", outputPath).
		Bool("stdout", toStdout).
		Msg("Starting invoice generation")

	cfg, inv, err := loadInputs(configPath, invoicePath, log)
	if err != nil {
		return handleGenerateError(err, log)
	}

	result, err := newGenerator().Generate(cfg, inv)
	if err != nil {
		return handleGenerateError(err, log)
	}

	data, err := isdoc.Marshal(result.Document)
	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize ISDOC document")
		return fmt.Errorf("failed to create ISDOC output: %w", err)
	}

	log.Info().
		Str("id", result.Document.ID).
		Str("recipient", result.Recipient.Name).
		Str("total", result.Totals.Total.StringFixed(2)).
		Str("currency", cfg.Currency).
		Str("due_date", result.Dates.Due.Format("2006-01-02")).
		Msg("Invoice generated successfully")

	if toStdout {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	return writeOutputFile(outputPath, data, log)
}

// writeOutputFile writes data through a temporary file in the target
// directory so a failed run never leaves a partial document behind.
func writeOutputFile(path string, data []byte, log zerolog.Logger) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		log.Error().Err(err).Str("output_file", path).Msg("Failed to create output file")
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		log.Error().Err(err).Str("output_file", path).Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		log.Error().Err(err).Str("output_file", path).Msg("Failed to move output file into place")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output_file", path).
		Int("bytes", len(data)).
		Msg("ISDOC document written to file")
	return nil
}
