// Package invoice computes invoices from a billing period and assembles
// them into ISDOC documents.
//
// The pipeline is linear and free of I/O:
//   - ResolveRecipient picks the customer from the configuration
//   - ResolveBillings picks the day-rate or hour-rate variant of every line
//   - CalculateTotals computes line amounts, VAT and totals rounded to cents
//   - CalculateDates derives the issue date (last day of the billing month)
//     and the due date
//   - Assemble builds the isdoc.Invoice
//
// Generator wires these steps together. It holds no mutable state, so one
// Generator may be shared between goroutines.
package invoice

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zamorem/isdoc-gen/internal/isdoc"
	"github.com/zamorem/isdoc-gen/internal/logger"
	"github.com/zamorem/isdoc-gen/pkg/models"
)

// DefaultIssuingSystem is written to ISDOC IssuingSystem unless overridden.
const DefaultIssuingSystem = "isdoc-gen"

// Clock supplies the current time. The invoice year comes from it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Result is a generated document together with the values it was built from.
type Result struct {
	Document  *isdoc.Invoice
	Recipient models.CompanyConfig
	Billings  []ResolvedBilling
	Totals    MonetaryTotals
	Dates     Dates
}

// Generator turns configuration and invoice input into ISDOC documents.
type Generator struct {
	clock         Clock
	newUUID       func() string
	issuingSystem string
	log           zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock the invoice year is taken from.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithUUIDFunc sets the document UUID source.
func WithUUIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newUUID = fn }
}

// WithIssuingSystem sets the ISDOC IssuingSystem value.
func WithIssuingSystem(name string) Option {
	return func(g *Generator) { g.issuingSystem = name }
}

// NewGenerator creates a Generator using the system clock and random UUIDs.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		clock:         SystemClock{},
		newUUID:       func() string { return uuid.New().String() },
		issuingSystem: DefaultIssuingSystem,
		log:           logger.WithComponent("invoice"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate computes and assembles one invoice. It either returns a complete
// document or an error; nothing is produced on failure.
func (g *Generator) Generate(cfg *models.Config, inv *models.InvoiceInput) (*Result, error) {
	const op = "Generate"

	if cfg == nil || inv == nil {
		return nil, fmt.Errorf("invoice: %s: config and invoice input are required", op)
	}

	recipient, err := ResolveRecipient(cfg, inv.RecipientID)
	if err != nil {
		return nil, err
	}
	g.log.Debug().
		Str("recipient_id", inv.RecipientID).
		Str("recipient", recipient.Name).
		Msg("Resolved recipient")

	billings, err := ResolveBillings(inv.Items)
	if err != nil {
		return nil, err
	}
	for i, b := range billings {
		g.log.Debug().
			Int("line", i+1).
			Stringer("variant", b.Variant).
			Str("quantity", b.Quantity.String()).
			Str("rate", b.Rate.String()).
			Msg("Resolved billing variant")
	}

	totals := CalculateTotals(billings, cfg.Supplier.TaxID)

	year := g.clock.Now().Year()
	dates, err := CalculateDates(year, inv.Month, cfg.DueDays)
	if err != nil {
		return nil, err
	}

	id := DocumentID(year, inv.Number)
	doc := Assemble(Assembly{
		ID:            id,
		UUID:          g.newUUID(),
		IssuingSystem: g.issuingSystem,
		Config:        cfg,
		Invoice:       inv,
		Recipient:     recipient,
		Billings:      billings,
		Totals:        totals,
		Dates:         dates,
	})

	g.log.Debug().
		Str("id", id).
		Str("subtotal", totals.Subtotal.StringFixed(2)).
		Str("vat_percent", totals.VATPercent.String()).
		Str("tax", totals.TaxAmount.StringFixed(2)).
		Str("total", totals.Total.StringFixed(2)).
		Time("issue_date", dates.Issue).
		Time("due_date", dates.Due).
		Msg("Invoice assembled")

	return &Result{
		Document:  doc,
		Recipient: recipient,
		Billings:  billings,
		Totals:    totals,
		Dates:     dates,
	}, nil
}

// DocumentID combines the year with the per-year sequence number. Numeric
// sequence numbers are zero padded to three digits.
func DocumentID(year int, number string) string {
	if n, err := strconv.Atoi(number); err == nil && n >= 0 {
		return fmt.Sprintf("%d%03d", year, n)
	}
	return fmt.Sprintf("%d%s", year, number)
}
