package invoice

import (
	"github.com/shopspring/decimal"
	"github.com/zamorem/isdoc-gen/internal/isdoc"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

// Variant tags the billing variant of a line item.
type Variant int

const (
	// VariantDayRate bills man-days (md, md_rate).
	VariantDayRate Variant = iota + 1
	// VariantHourRate bills hours (hr, hr_rate).
	VariantHourRate
)

func (v Variant) String() string {
	switch v {
	case VariantDayRate:
		return "day-rate"
	case VariantHourRate:
		return "hour-rate"
	default:
		return "unknown"
	}
}

// UnitCode returns the ISDOC unit of measure for the variant.
func (v Variant) UnitCode() string {
	if v == VariantHourRate {
		return isdoc.UnitHour
	}
	return isdoc.UnitDay
}

// ResolvedBilling is the billable quantity and unit rate of one line item.
type ResolvedBilling struct {
	Variant  Variant
	Quantity decimal.Decimal
	Rate     decimal.Decimal
}

// ResolveBilling picks the billing variant of item. A complete day-rate pair
// takes priority over a complete hour-rate pair; an item with neither is
// rejected. index is the 1-based position used in the error.
func ResolveBilling(index int, item models.LineItem) (ResolvedBilling, error) {
	if item.DayQuantity != nil && item.DayRate != nil {
		return ResolvedBilling{
			Variant:  VariantDayRate,
			Quantity: *item.DayQuantity,
			Rate:     *item.DayRate,
		}, nil
	}
	if item.HourQuantity != nil && item.HourRate != nil {
		return ResolvedBilling{
			Variant:  VariantHourRate,
			Quantity: *item.HourQuantity,
			Rate:     *item.HourRate,
		}, nil
	}
	return ResolvedBilling{}, NewInvalidLineItemError(index, item.Text)
}

// ResolveBillings resolves every item, stopping at the first invalid one.
func ResolveBillings(items []models.LineItem) ([]ResolvedBilling, error) {
	billings := make([]ResolvedBilling, 0, len(items))
	for i, item := range items {
		billing, err := ResolveBilling(i+1, item)
		if err != nil {
			return nil, err
		}
		billings = append(billings, billing)
	}
	return billings, nil
}
