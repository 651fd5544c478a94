package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func dayItem(text, qty, rate string) models.LineItem {
	return models.LineItem{Text: text, DayQuantity: decPtr(qty), DayRate: decPtr(rate)}
}

func hourItem(text, qty, rate string) models.LineItem {
	return models.LineItem{Text: text, HourQuantity: decPtr(qty), HourRate: decPtr(rate)}
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

func company(name, companyID, taxID string) models.CompanyConfig {
	return models.CompanyConfig{
		Name:      name,
		CompanyID: companyID,
		TaxID:     taxID,
		Address: models.Address{
			Street:     "Dlouhá 12",
			City:       "Praha",
			PostalCode: "11000",
			Country:    "CZ",
		},
	}
}
