package models

import "github.com/shopspring/decimal"

// MonthPlaceholder is replaced by the localized month name in line texts.
const MonthPlaceholder = "{{month}}"

// LineItem is one billed line as read from the invoice file. Exactly one of
// the (DayQuantity, DayRate) and (HourQuantity, HourRate) pairs is expected
// to be complete; nil means the field was absent.
type LineItem struct {
	Text string

	// Day-rate variant (man-days).
	DayQuantity *decimal.Decimal
	DayRate     *decimal.Decimal

	// Hour-rate variant.
	HourQuantity *decimal.Decimal
	HourRate     *decimal.Decimal
}

// InvoiceInput is a single billing period.
type InvoiceInput struct {
	Number      string // sequence number within the year
	Month       int    // billing month, 1-12
	PaymentID   string // variable symbol
	RecipientID string // optional key into Config.Recipients
	Items       []LineItem
}
