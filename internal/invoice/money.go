package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StandardVATPercent is the only VAT rate applied.
const StandardVATPercent = 21

var hundred = decimal.NewFromInt(100)

// Round2 rounds d to cents: shift by two places, round half away from zero,
// shift back.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Round(0).Shift(-2)
}

// VATApplicable reports whether a supplier with taxID is VAT registered.
func VATApplicable(taxID string) bool {
	return strings.TrimSpace(taxID) != ""
}

// VATPercent returns the VAT rate for a supplier with taxID.
func VATPercent(taxID string) decimal.Decimal {
	if VATApplicable(taxID) {
		return decimal.NewFromInt(StandardVATPercent)
	}
	return decimal.Zero
}

// LineAmounts are the computed amounts of one line.
type LineAmounts struct {
	// Amount is quantity times rate, rounded.
	Amount decimal.Decimal
	// AmountTaxInclusive is Amount with VAT added, not rounded.
	AmountTaxInclusive decimal.Decimal
	// TaxAmount is the VAT of Amount, rounded.
	TaxAmount decimal.Decimal
	// UnitPriceTaxInclusive is the rate with VAT added, rounded.
	UnitPriceTaxInclusive decimal.Decimal
}

// MonetaryTotals are the document level amounts.
type MonetaryTotals struct {
	Lines         []LineAmounts
	VATApplicable bool
	VATPercent    decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

// CalculateTotals computes line and document amounts. Every amount is
// rounded where it is computed, so Total is not necessarily the sum of the
// line tax-inclusive amounts.
func CalculateTotals(billings []ResolvedBilling, supplierTaxID string) MonetaryTotals {
	vat := VATPercent(supplierTaxID)
	vatRate := vat.Div(hundred)
	grossFactor := decimal.NewFromInt(1).Add(vatRate)

	totals := MonetaryTotals{
		Lines:         make([]LineAmounts, 0, len(billings)),
		VATApplicable: VATApplicable(supplierTaxID),
		VATPercent:    vat,
		Subtotal:      decimal.Zero,
	}

	for _, b := range billings {
		amount := Round2(b.Quantity.Mul(b.Rate))
		totals.Lines = append(totals.Lines, LineAmounts{
			Amount:                amount,
			AmountTaxInclusive:    amount.Mul(grossFactor),
			TaxAmount:             Round2(amount.Mul(vatRate)),
			UnitPriceTaxInclusive: Round2(b.Rate.Mul(grossFactor)),
		})
		totals.Subtotal = totals.Subtotal.Add(amount)
	}

	totals.TaxAmount = Round2(totals.Subtotal.Mul(vatRate))
	totals.Total = Round2(totals.Subtotal.Mul(grossFactor))
	return totals
}
