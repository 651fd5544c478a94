package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zamorem/isdoc-gen/internal/invoice"
	"github.com/zamorem/isdoc-gen/internal/source"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

// addInputFlags registers the two input file flags shared by all commands.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Supplier/recipient configuration YAML (default: $ISDOC_CONFIG)")
	cmd.Flags().StringP("invoice", "i", "", "Invoice YAML for one billing period")
	_ = cmd.MarkFlagRequired("invoice")
}

// inputPaths returns the configuration and invoice paths, falling back to
// ISDOC_CONFIG for the configuration.
func inputPaths(cmd *cobra.Command) (configPath, invoicePath string, err error) {
	configPath, _ = cmd.Flags().GetString("config")
	invoicePath, _ = cmd.Flags().GetString("invoice")

	if configPath == "" {
		configPath = appConfig.DefaultConfigPath
	}
	if configPath == "" {
		return "", "", fmt.Errorf("required flag \"config\" not set (or set ISDOC_CONFIG)")
	}
	return configPath, invoicePath, nil
}

// loadInputs validates and reads both input files.
func loadInputs(configPath, invoicePath string, log zerolog.Logger) (*models.Config, *models.InvoiceInput, error) {
	for _, path := range []string{configPath, invoicePath} {
		if err := validateInputFile(path, log); err != nil {
			return nil, nil, err
		}
	}

	loader := source.NewLoader(appConfig.DefaultCountry)

	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	inv, err := loader.LoadInvoice(invoicePath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, inv, nil
}

// validateInputFile checks that path names a readable, non-empty regular file
func validateInputFile(path string, log zerolog.Logger) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", path).
				Msg("Input file not found")
			return fmt.Errorf("input file not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().
				Str("file", path).
				Msg("Permission denied accessing input file")
			return fmt.Errorf("permission denied accessing input file: %s", path)
		}
		return fmt.Errorf("error accessing input file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().
			Str("file", path).
			Msg("Path is not a regular file")
		return fmt.Errorf("path is not a regular file: %s", path)
	}

	if fileInfo.Size() == 0 {
		log.Error().
			Str("file", path).
			Msg("Input file is empty")
		return fmt.Errorf("input file is empty: %s", path)
	}

	return nil
}

// newGenerator creates the invoice generator from process settings
func newGenerator() *invoice.Generator {
	return invoice.NewGenerator(invoice.WithIssuingSystem(appConfig.IssuingSystem))
}

// handleGenerateError provides user-friendly error messages for failed runs
func handleGenerateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice generation failed")

	var lineErr *invoice.InvalidLineItemError
	var validationErr *source.ValidationError

	switch {
	case errors.As(err, &lineErr):
		return fmt.Errorf("line item %d (%q) must have either md and md_rate, or hr and hr_rate", lineErr.Index, lineErr.Text)
	case errors.Is(err, invoice.ErrNoRecipient):
		return fmt.Errorf("no recipient found. Add a recipients table (or legacy recipient) to the configuration, "+
			"or fix recipient_id in the invoice: %w", err)
	case errors.Is(err, invoice.ErrInvalidMonth):
		return fmt.Errorf("invalid billing month. month must be a number from 1 to 12: %w", err)
	case errors.Is(err, source.ErrInvalidConfig):
		return fmt.Errorf("invalid configuration file: %w", err)
	case errors.As(err, &validationErr):
		return fmt.Errorf("invalid invoice file: %w", err)
	default:
		return fmt.Errorf("invoice generation failed: %w", err)
	}
}
