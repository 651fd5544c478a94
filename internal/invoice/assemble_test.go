package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamorem/isdoc-gen/internal/isdoc"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

func assembleFixture(t *testing.T, supplierTaxID string, items ...models.LineItem) *isdoc.Invoice {
	t.Helper()

	cfg := &models.Config{
		Supplier: company("Dodavatel s.r.o.", "12345678", supplierTaxID),
		Recipients: models.Recipients{
			{Key: "acme", Company: company("Acme a.s.", "87654321", "")},
		},
		DueDays:  14,
		Currency: "CZK",
	}
	inv := &models.InvoiceInput{
		Number:    "7",
		Month:     3,
		PaymentID: "2026007",
		Items:     items,
	}

	billings, err := ResolveBillings(inv.Items)
	require.NoError(t, err)
	dates, err := CalculateDates(2026, inv.Month, cfg.DueDays)
	require.NoError(t, err)

	return Assemble(Assembly{
		ID:            "2026007",
		UUID:          "5f0c6f2e-7d7a-4c5e-9b1a-2f7d7c9b1e10",
		IssuingSystem: "test",
		Config:        cfg,
		Invoice:       inv,
		Recipient:     cfg.Recipients[0].Company,
		Billings:      billings,
		Totals:        CalculateTotals(billings, cfg.Supplier.TaxID),
		Dates:         dates,
	})
}

func TestAssembleParties(t *testing.T) {
	doc := assembleFixture(t, "CZ12345678", hourItem("Support", "8", "750"))

	supplier := doc.AccountingSupplierParty.Party
	assert.Equal(t, "12345678", supplier.PartyIdentification.ID)
	assert.Equal(t, "Dodavatel s.r.o.", supplier.PartyName.Name)
	assert.Equal(t, "CZ12345678", supplier.PartyTaxScheme.CompanyID)
	assert.Equal(t, "VAT", supplier.PartyTaxScheme.TaxScheme)
	assert.Equal(t, "Dlouhá 12", supplier.PostalAddress.StreetName)
	assert.Equal(t, "Praha", supplier.PostalAddress.CityName)
	assert.Equal(t, "11000", supplier.PostalAddress.PostalZone)
	assert.Equal(t, "CZ", supplier.PostalAddress.Country.IdentificationCode)
	assert.Equal(t, "Česká republika", supplier.PostalAddress.Country.Name)

	// Customer has no tax id, its company id stands in.
	customer := doc.AccountingCustomerParty.Party
	assert.Equal(t, "Acme a.s.", customer.PartyName.Name)
	assert.Equal(t, "87654321", customer.PartyTaxScheme.CompanyID)
}

func TestAssembleLines(t *testing.T) {
	doc := assembleFixture(t, "CZ1",
		dayItem("Služby za {{month}}", "10", "2500"),
		hourItem("Support {{month}} / {{month}}", "8", "750"),
	)

	lines := doc.InvoiceLines.Lines
	require.Len(t, lines, 2)

	assert.Equal(t, "1", lines[0].ID)
	assert.Equal(t, "2", lines[1].ID)
	assert.Equal(t, "Služby za březen", lines[0].Item.Description)
	assert.Equal(t, "Support březen / březen", lines[1].Item.Description)

	assert.Equal(t, isdoc.UnitDay, lines[0].InvoicedQuantity.UnitCode)
	assert.Equal(t, "10", lines[0].InvoicedQuantity.Value)
	assert.Equal(t, isdoc.UnitHour, lines[1].InvoicedQuantity.UnitCode)

	assert.Equal(t, "25000.00", lines[0].LineExtensionAmount.StringFixed(2))
	assert.Equal(t, "30250", lines[0].LineExtensionAmountTaxInclusive.String())
	assert.Equal(t, "5250.00", lines[0].LineExtensionTaxAmount.StringFixed(2))
	assert.Equal(t, "2500", lines[0].UnitPrice.String())
	assert.Equal(t, "3025.00", lines[0].UnitPriceTaxInclusive.StringFixed(2))
	assert.Equal(t, "21", lines[0].ClassifiedTaxCategory.Percent.String())
	assert.True(t, lines[0].ClassifiedTaxCategory.VATApplicable)
}

func TestAssembleTotalsAndPayment(t *testing.T) {
	doc := assembleFixture(t, "CZ123", hourItem("Support", "8", "750"))

	assert.Equal(t, isdoc.DocumentTypeInvoice, doc.DocumentType)
	assert.Equal(t, "2026007", doc.ID)
	assert.Equal(t, "5f0c6f2e-7d7a-4c5e-9b1a-2f7d7c9b1e10", doc.UUID)
	assert.Equal(t, "CZK", doc.LocalCurrencyCode)
	assert.True(t, doc.VATApplicable)
	assert.Equal(t, "2026-03-31", doc.IssueDate.Format("2006-01-02"))
	assert.Equal(t, doc.IssueDate, doc.TaxPointDate)

	sub := doc.TaxTotal.TaxSubTotal
	assert.Equal(t, "6000.00", sub.TaxableAmount.StringFixed(2))
	assert.Equal(t, "1260.00", sub.TaxAmount.StringFixed(2))
	assert.Equal(t, "7260.00", sub.TaxInclusiveAmount.StringFixed(2))
	assert.True(t, sub.AlreadyClaimedTaxableAmount.IsZero())
	assert.True(t, sub.AlreadyClaimedTaxAmount.IsZero())
	assert.True(t, sub.AlreadyClaimedTaxInclusiveAmount.IsZero())
	assert.Equal(t, sub.TaxableAmount, sub.DifferenceTaxableAmount)
	assert.Equal(t, sub.TaxAmount, sub.DifferenceTaxAmount)
	assert.Equal(t, sub.TaxInclusiveAmount, sub.DifferenceTaxInclusiveAmount)
	assert.Equal(t, "21", sub.TaxCategory.Percent.String())
	assert.Equal(t, "1260.00", doc.TaxTotal.TaxAmount.StringFixed(2))

	total := doc.LegalMonetaryTotal
	assert.Equal(t, "6000.00", total.TaxExclusiveAmount.StringFixed(2))
	assert.Equal(t, "7260.00", total.TaxInclusiveAmount.StringFixed(2))
	assert.True(t, total.AlreadyClaimedTaxExclusiveAmount.IsZero())
	assert.True(t, total.PaidDepositsAmount.IsZero())
	assert.Equal(t, total.TaxInclusiveAmount, total.DifferenceTaxInclusiveAmount)
	assert.Equal(t, "7260.00", total.PayableAmount.StringFixed(2))

	payment := doc.PaymentMeans.Payment
	assert.Equal(t, isdoc.PaymentMeansBankTransfer, payment.PaymentMeansCode)
	assert.Equal(t, "7260.00", payment.PaidAmount.StringFixed(2))
	assert.Equal(t, "2026007", payment.Details.VariableSymbol)
	assert.Equal(t, "2026-04-14", payment.Details.PaymentDueDate.Format("2006-01-02"))
	assert.Empty(t, payment.Details.ID)
	assert.Empty(t, payment.Details.IBAN)
	assert.Empty(t, payment.Details.BIC)
}

func TestAssembleWithoutVAT(t *testing.T) {
	doc := assembleFixture(t, " ", dayItem("Consulting", "10", "2500"))

	assert.False(t, doc.VATApplicable)
	assert.Equal(t, "12345678", doc.AccountingSupplierParty.Party.PartyTaxScheme.CompanyID)
	assert.Equal(t, "0", doc.TaxTotal.TaxSubTotal.TaxCategory.Percent.String())
	assert.Equal(t, "25000.00", doc.LegalMonetaryTotal.PayableAmount.StringFixed(2))
	assert.Equal(t, "25000", doc.InvoiceLines.Lines[0].LineExtensionAmountTaxInclusive.String())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "leden", MonthName(1))
	assert.Equal(t, "březen", MonthName(3))
	assert.Equal(t, "prosinec", MonthName(12))
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
}
