package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamorem/isdoc-gen/internal/invoice"
	"github.com/zamorem/isdoc-gen/internal/source"
)

const testConfig = `
supplier:
  name: Studio s.r.o.
  company_id: "12345678"
  tax_id: CZ12345678
  address: {street: Dlouhá 12, city: Praha, zip: "11000"}
recipients:
  acme:
    name: Acme a.s.
    company_id: "87654321"
due_days: 14
currency: CZK
`

func writeInputs(t *testing.T, invoiceYAML string) (dir, configPath, invoicePath string) {
	t.Helper()

	dir = t.TempDir()
	configPath = filepath.Join(dir, "company.yaml")
	invoicePath = filepath.Join(dir, "2026-03.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0o644))
	require.NoError(t, os.WriteFile(invoicePath, []byte(invoiceYAML), 0o644))
	return dir, configPath, invoicePath
}

func TestGenerateCommand(t *testing.T) {
	dir, configPath, invoicePath := writeInputs(t, `
nr: 7
month: 3
payment_id: "2026007"
items:
  - text: Služby za {{month}}
    hr: 8
    hr_rate: 750
`)

	rootCmd.SetArgs([]string{"generate", "--config", configPath, "--invoice", invoicePath})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "2026-03.isdoc"))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `<Invoice xmlns="http://isdoc.cz/namespace/2013" version="6.0.1">`)
	assert.Contains(t, out, "<Description>Služby za březen</Description>")
	assert.Contains(t, out, "<TaxExclusiveAmount>6000.00</TaxExclusiveAmount>")
	assert.Contains(t, out, "<PayableAmount>7260.00</PayableAmount>")
	assert.Contains(t, out, "<VariableSymbol>2026007</VariableSymbol>")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files may be left behind")
}

func TestGenerateCommandWritesNothingOnError(t *testing.T) {
	dir, configPath, invoicePath := writeInputs(t, `
nr: 8
month: 3
payment_id: "2026008"
items:
  - text: Bez sazby
    hr: 8
`)

	rootCmd.SetArgs([]string{"generate", "--config", configPath, "--invoice", invoicePath})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bez sazby")

	_, statErr := os.Stat(filepath.Join(dir, "2026-03.isdoc"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.isdoc")

	require.NoError(t, writeOutputFile(path, []byte("<Invoice/>"), zerolog.Nop()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Invoice/>", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	err = writeOutputFile(filepath.Join(dir, "missing", "out.isdoc"), []byte("x"), zerolog.Nop())
	assert.Error(t, err)
}

type testClock struct{}

func (testClock) Now() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }

func TestBuildTotalsOutput(t *testing.T) {
	_, configPath, invoicePath := writeInputs(t, `
nr: 9
month: 3
payment_id: "2026009"
items:
  - text: Vývoj
    md: 2
    md_rate: 9000
  - text: Podpora
    hr: 3
    hr_rate: 800
`)
	loader := source.NewLoader("CZ")
	cfg, err := loader.LoadConfig(configPath)
	require.NoError(t, err)
	inv, err := loader.LoadInvoice(invoicePath)
	require.NoError(t, err)

	result, err := invoice.NewGenerator(invoice.WithClock(testClock{})).Generate(cfg, inv)
	require.NoError(t, err)

	out := buildTotalsOutput(result, cfg.Currency)

	assert.Equal(t, "2026009", out.ID)
	assert.Equal(t, "Acme a.s.", out.Recipient)
	assert.Equal(t, "2026-03-31", out.IssueDate)
	assert.Equal(t, "2026-04-14", out.DueDate)
	assert.Equal(t, "21", out.VATPercent)
	assert.Equal(t, "20400.00", out.Subtotal)
	assert.Equal(t, "4284.00", out.TaxAmount)
	assert.Equal(t, "24684.00", out.Total)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "day-rate", out.Lines[0].Variant)
	assert.Equal(t, "hour-rate", out.Lines[1].Variant)
	assert.Equal(t, "2400.00", out.Lines[1].Amount)
}

func TestHandleGenerateError(t *testing.T) {
	err := handleGenerateError(invoice.NewInvalidLineItemError(2, "Podpora"), zerolog.Nop())
	assert.EqualError(t, err, `line item 2 ("Podpora") must have either md and md_rate, or hr and hr_rate`)

	err = handleGenerateError(source.NewValidationError("nr", "", "invoice number is required"), zerolog.Nop())
	assert.Contains(t, err.Error(), "invalid invoice file")
}

func TestTotalsPrintsTableByDefault(t *testing.T) {
	flag := totalsCmd.Flags().Lookup("json")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
