package invoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zamorem/isdoc-gen/internal/isdoc"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

// monthNames are the Czech names substituted for models.MonthPlaceholder.
var monthNames = [12]string{
	"leden", "únor", "březen", "duben", "květen", "červen",
	"červenec", "srpen", "září", "říjen", "listopad", "prosinec",
}

// MonthName returns the localized name of month (1-12), or "" if out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// countryNames covers the countries parties are expected to be in.
var countryNames = map[string]string{
	"CZ": "Česká republika",
	"SK": "Slovensko",
	"DE": "Německo",
	"AT": "Rakousko",
	"PL": "Polsko",
}

// Assembly is everything the assembler combines into a document.
type Assembly struct {
	ID            string
	UUID          string
	IssuingSystem string

	Config    *models.Config
	Invoice   *models.InvoiceInput
	Recipient models.CompanyConfig
	Billings  []ResolvedBilling
	Totals    MonetaryTotals
	Dates     Dates
}

// Assemble builds the ISDOC document. Billings and Totals.Lines must be
// aligned with Invoice.Items.
func Assemble(a Assembly) *isdoc.Invoice {
	zero := isdoc.NewAmount(decimal.Zero)
	subtotal := isdoc.NewAmount(a.Totals.Subtotal)
	tax := isdoc.NewAmount(a.Totals.TaxAmount)
	total := isdoc.NewAmount(a.Totals.Total)
	issue := isdoc.NewDate(a.Dates.Issue)
	one := decimal.NewFromInt(1)

	return &isdoc.Invoice{
		Xmlns:   isdoc.Namespace,
		Version: isdoc.Version,

		DocumentType:      isdoc.DocumentTypeInvoice,
		ID:                a.ID,
		UUID:              a.UUID,
		IssuingSystem:     a.IssuingSystem,
		IssueDate:         issue,
		TaxPointDate:      issue,
		VATApplicable:     a.Totals.VATApplicable,
		LocalCurrencyCode: a.Config.Currency,
		CurrRate:          one,
		RefCurrRate:       one,

		AccountingSupplierParty: isdoc.PartyContainer{Party: buildParty(a.Config.Supplier)},
		AccountingCustomerParty: isdoc.PartyContainer{Party: buildParty(a.Recipient)},

		InvoiceLines: isdoc.InvoiceLines{Lines: buildLines(a)},

		TaxTotal: isdoc.TaxTotal{
			TaxSubTotal: isdoc.TaxSubTotal{
				TaxableAmount:                    subtotal,
				TaxAmount:                        tax,
				TaxInclusiveAmount:               total,
				AlreadyClaimedTaxableAmount:      zero,
				AlreadyClaimedTaxAmount:          zero,
				AlreadyClaimedTaxInclusiveAmount: zero,
				DifferenceTaxableAmount:          subtotal,
				DifferenceTaxAmount:              tax,
				DifferenceTaxInclusiveAmount:     total,
				TaxCategory:                      isdoc.SubTotalTaxCategory{Percent: a.Totals.VATPercent},
			},
			TaxAmount: tax,
		},

		LegalMonetaryTotal: isdoc.LegalMonetaryTotal{
			TaxExclusiveAmount:               subtotal,
			TaxInclusiveAmount:               total,
			AlreadyClaimedTaxExclusiveAmount: zero,
			AlreadyClaimedTaxInclusiveAmount: zero,
			DifferenceTaxExclusiveAmount:     subtotal,
			DifferenceTaxInclusiveAmount:     total,
			PayableRoundingAmount:            zero,
			PaidDepositsAmount:               zero,
			PayableAmount:                    total,
		},

		PaymentMeans: isdoc.PaymentMeans{
			Payment: isdoc.Payment{
				PaidAmount:       total,
				PaymentMeansCode: isdoc.PaymentMeansBankTransfer,
				Details: isdoc.PaymentDetails{
					PaymentDueDate: isdoc.NewDate(a.Dates.Due),
					VariableSymbol: a.Invoice.PaymentID,
				},
			},
		},
	}
}

func buildParty(c models.CompanyConfig) isdoc.Party {
	taxID := strings.TrimSpace(c.TaxID)
	if taxID == "" {
		taxID = c.CompanyID
	}

	return isdoc.Party{
		PartyIdentification: isdoc.PartyIdentification{ID: c.CompanyID},
		PartyName:           isdoc.PartyName{Name: c.Name},
		PostalAddress: isdoc.PostalAddress{
			StreetName: c.Address.Street,
			CityName:   c.Address.City,
			PostalZone: c.Address.PostalCode,
			Country: isdoc.Country{
				IdentificationCode: c.Address.Country,
				Name:               countryNames[c.Address.Country],
			},
		},
		PartyTaxScheme: isdoc.PartyTaxScheme{
			CompanyID: taxID,
			TaxScheme: isdoc.TaxSchemeVAT,
		},
	}
}

func buildLines(a Assembly) []isdoc.InvoiceLine {
	month := MonthName(a.Invoice.Month)
	lines := make([]isdoc.InvoiceLine, 0, len(a.Invoice.Items))

	for i, item := range a.Invoice.Items {
		billing := a.Billings[i]
		amounts := a.Totals.Lines[i]

		lines = append(lines, isdoc.InvoiceLine{
			ID:                              strconv.Itoa(i + 1),
			InvoicedQuantity:                isdoc.NewQuantity(billing.Quantity, billing.Variant.UnitCode()),
			LineExtensionAmount:             isdoc.NewAmount(amounts.Amount),
			LineExtensionAmountTaxInclusive: amounts.AmountTaxInclusive,
			LineExtensionTaxAmount:          isdoc.NewAmount(amounts.TaxAmount),
			UnitPrice:                       billing.Rate,
			UnitPriceTaxInclusive:           isdoc.NewAmount(amounts.UnitPriceTaxInclusive),
			ClassifiedTaxCategory: isdoc.TaxCategory{
				Percent:              a.Totals.VATPercent,
				VATCalculationMethod: isdoc.VATCalculationFromBottom,
				VATApplicable:        a.Totals.VATApplicable,
			},
			Item: isdoc.Item{
				Description: strings.ReplaceAll(item.Text, models.MonthPlaceholder, month),
			},
		})
	}
	return lines
}
