package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zamorem/isdoc-gen/internal/invoice"
	"github.com/zamorem/isdoc-gen/internal/logger"
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Preview computed amounts and dates without writing a document",
	Long: `Run the same computation as "generate" and print the resolved recipient,
line amounts, VAT, totals, issue and due dates. Nothing is written to disk.`,
	Example: `  # Human readable summary
  isdoc-gen totals -c company.yaml -i march.yaml

  # JSON summary
  isdoc-gen totals -c company.yaml -i march.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runTotals,
}

// TotalsOutput is the JSON form of a computed invoice.
type TotalsOutput struct {
	ID            string       `json:"id"`
	Recipient     string       `json:"recipient"`
	IssueDate     string       `json:"issue_date"`
	DueDate       string       `json:"due_date"`
	Currency      string       `json:"currency"`
	VATApplicable bool         `json:"vat_applicable"`
	VATPercent    string       `json:"vat_percent"`
	Subtotal      string       `json:"subtotal"`
	TaxAmount     string       `json:"tax_amount"`
	Total         string       `json:"total"`
	Lines         []LineOutput `json:"lines"`
}

// LineOutput is one computed line.
type LineOutput struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
	TaxAmount   string `json:"tax_amount"`
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	addInputFlags(totalsCmd)
	totalsCmd.Flags().Bool("json", false, "Output as JSON format")
}

func runTotals(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("totals")

	configPath, invoicePath, err := inputPaths(cmd)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, inv, err := loadInputs(configPath, invoicePath, log)
	if err != nil {
		return handleGenerateError(err, log)
	}

	result, err := newGenerator().Generate(cfg, inv)
	if err != nil {
		return handleGenerateError(err, log)
	}

	output := buildTotalsOutput(result, cfg.Currency)
	if jsonOutput {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printTotals(output)
	return nil
}

func buildTotalsOutput(result *invoice.Result, currency string) TotalsOutput {
	doc := result.Document
	out := TotalsOutput{
		ID:            doc.ID,
		Recipient:     result.Recipient.Name,
		IssueDate:     result.Dates.Issue.Format("2006-01-02"),
		DueDate:       result.Dates.Due.Format("2006-01-02"),
		Currency:      currency,
		VATApplicable: result.Totals.VATApplicable,
		VATPercent:    result.Totals.VATPercent.String(),
		Subtotal:      result.Totals.Subtotal.StringFixed(2),
		TaxAmount:     result.Totals.TaxAmount.StringFixed(2),
		Total:         result.Totals.Total.StringFixed(2),
		Lines:         make([]LineOutput, 0, len(doc.InvoiceLines.Lines)),
	}

	for i, line := range doc.InvoiceLines.Lines {
		billing := result.Billings[i]
		out.Lines = append(out.Lines, LineOutput{
			ID:          line.ID,
			Description: line.Item.Description,
			Variant:     billing.Variant.String(),
			Quantity:    billing.Quantity.String(),
			Rate:        billing.Rate.String(),
			Amount:      result.Totals.Lines[i].Amount.StringFixed(2),
			TaxAmount:   result.Totals.Lines[i].TaxAmount.StringFixed(2),
		})
	}
	return out
}

func printTotals(out TotalsOutput) {
	fmt.Printf("Invoice %s for %s\n", out.ID, out.Recipient)
	fmt.Printf("Issued %s, due %s\n", out.IssueDate, out.DueDate)
	fmt.Println(strings.Repeat("=", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\tDescription\tQty\tRate\tAmount\t")
	for _, line := range out.Lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", line.ID, line.Description, line.Quantity, line.Rate, line.Amount)
	}
	_ = w.Flush()

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Subtotal:       %s %s\n", out.Subtotal, out.Currency)
	if out.VATApplicable {
		fmt.Printf("VAT %s %%:       %s %s\n", out.VATPercent, out.TaxAmount, out.Currency)
	} else {
		fmt.Println("VAT:            not applicable")
	}
	fmt.Printf("Total:          %s %s\n", out.Total, out.Currency)
}
