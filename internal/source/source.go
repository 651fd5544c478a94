// Package source reads the YAML configuration and invoice files into the
// typed models. Validation happens here once; the invoice package trusts
// what it receives.
package source

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/zamorem/isdoc-gen/internal/invoice"
	"github.com/zamorem/isdoc-gen/internal/logger"
	"github.com/zamorem/isdoc-gen/pkg/models"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is used when the configuration names none.
const DefaultCurrency = "CZK"

// ValidationError represents errors in invoice file validation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ErrInvalidConfig marks configuration file problems found while loading.
var ErrInvalidConfig = errors.New("invalid configuration")

type addressFile struct {
	Street     string `yaml:"street"`
	City       string `yaml:"city"`
	PostalCode string `yaml:"zip"`
	Country    string `yaml:"country"`
}

type companyFile struct {
	Name        string      `yaml:"name"`
	CompanyID   string      `yaml:"company_id"`
	TaxID       string      `yaml:"tax_id"`
	Address     addressFile `yaml:"address"`
	BankAccount string      `yaml:"bank_account"`
}

type configFile struct {
	Supplier   *companyFile `yaml:"supplier"`
	Recipients yaml.Node    `yaml:"recipients"`
	Recipient  *companyFile `yaml:"recipient"`
	DueDays    *int         `yaml:"due_days"`
	Currency   string       `yaml:"currency"`
}

type itemFile struct {
	Text   string  `yaml:"text"`
	MD     *scalar `yaml:"md"`
	MDRate *scalar `yaml:"md_rate"`
	HR     *scalar `yaml:"hr"`
	HRRate *scalar `yaml:"hr_rate"`
}

type invoiceFile struct {
	Nr          scalar     `yaml:"nr"`
	Month       scalar     `yaml:"month"`
	PaymentID   scalar     `yaml:"payment_id"`
	RecipientID string     `yaml:"recipient_id"`
	Items       []itemFile `yaml:"items"`
}

// scalar accepts any YAML scalar (string or number) as its literal text.
// Numbers are parsed from that text, so 010 stays ten and 0.1 stays exact.
type scalar string

func (s *scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", value.Line)
	}
	*s = scalar(strings.TrimSpace(value.Value))
	return nil
}

// Loader reads configuration and invoice files.
type Loader struct {
	// DefaultCountry fills party addresses without a country.
	DefaultCountry string

	log zerolog.Logger
}

// NewLoader creates a Loader.
func NewLoader(defaultCountry string) *Loader {
	return &Loader{
		DefaultCountry: strings.ToUpper(defaultCountry),
		log:            logger.WithComponent("source"),
	}
}

// LoadConfig reads and validates the configuration file at path.
func (l *Loader) LoadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := l.ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	l.log.Debug().
		Str("file", path).
		Str("supplier", cfg.Supplier.Name).
		Strs("recipients", cfg.Recipients.Keys()).
		Bool("legacy_recipient", cfg.Recipient != nil).
		Msg("Configuration loaded")
	return cfg, nil
}

// LoadInvoice reads and validates the invoice file at path.
func (l *Loader) LoadInvoice(path string) (*models.InvoiceInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invoice %s: %w", path, err)
	}

	inv, err := l.ParseInvoice(data)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", path, err)
	}

	l.log.Debug().
		Str("file", path).
		Str("nr", inv.Number).
		Int("month", inv.Month).
		Int("items", len(inv.Items)).
		Msg("Invoice input loaded")
	return inv, nil
}

// ParseConfig decodes a YAML configuration document.
func (l *Loader) ParseConfig(data []byte) (*models.Config, error) {
	const op = "ParseConfig"

	var raw configFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, invoice.NewConfigurationError(op, "", ErrInvalidConfig, err.Error())
	}

	if raw.Supplier == nil {
		return nil, invoice.NewConfigurationError(op, "supplier", ErrInvalidConfig, "supplier is required")
	}
	if strings.TrimSpace(raw.Supplier.Name) == "" {
		return nil, invoice.NewConfigurationError(op, "supplier.name", ErrInvalidConfig, "supplier name is required")
	}
	if raw.DueDays == nil {
		return nil, invoice.NewConfigurationError(op, "due_days", ErrInvalidConfig, "due_days is required")
	}
	if *raw.DueDays < 0 {
		return nil, invoice.NewConfigurationError(op, "due_days", ErrInvalidConfig, fmt.Sprintf("must not be negative, got %d", *raw.DueDays))
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, invoice.NewConfigurationError(op, "currency", ErrInvalidConfig, fmt.Sprintf("expected a 3-letter code, got %q", raw.Currency))
	}

	recipients, err := l.decodeRecipients(&raw.Recipients)
	if err != nil {
		return nil, invoice.NewConfigurationError(op, "recipients", ErrInvalidConfig, err.Error())
	}

	cfg := &models.Config{
		Supplier:   l.company(*raw.Supplier),
		Recipients: recipients,
		DueDays:    *raw.DueDays,
		Currency:   currency,
	}
	if raw.Recipient != nil {
		legacy := l.company(*raw.Recipient)
		cfg.Recipient = &legacy
	}

	if len(cfg.Recipients) == 0 && cfg.Recipient == nil {
		return nil, invoice.NewConfigurationError(op, "recipients", invoice.ErrNoRecipient, "configure recipients or recipient")
	}

	return cfg, nil
}

// decodeRecipients walks the mapping node so declaration order survives.
func (l *Loader) decodeRecipients(node *yaml.Node) (models.Recipients, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: recipients must be a mapping", node.Line)
	}

	recipients := make(models.Recipients, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var company companyFile
		if err := node.Content[i+1].Decode(&company); err != nil {
			return nil, fmt.Errorf("recipient %q: %w", key, err)
		}
		if _, dup := recipients.Lookup(key); dup {
			return nil, fmt.Errorf("recipient %q declared twice", key)
		}
		recipients = append(recipients, models.NamedCompany{Key: key, Company: l.company(company)})
	}
	return recipients, nil
}

func (l *Loader) company(c companyFile) models.CompanyConfig {
	country := strings.ToUpper(strings.TrimSpace(c.Address.Country))
	if country == "" {
		country = l.DefaultCountry
	}
	return models.CompanyConfig{
		Name:      strings.TrimSpace(c.Name),
		CompanyID: strings.TrimSpace(c.CompanyID),
		TaxID:     c.TaxID,
		Address: models.Address{
			Street:     c.Address.Street,
			City:       c.Address.City,
			PostalCode: c.Address.PostalCode,
			Country:    country,
		},
		BankAccount: c.BankAccount,
	}
}

// ParseInvoice decodes a YAML invoice document. Billing variants are not
// checked here; see invoice.ResolveBilling.
func (l *Loader) ParseInvoice(data []byte) (*models.InvoiceInput, error) {
	var raw invoiceFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse invoice: %w", err)
	}

	if raw.Nr == "" {
		return nil, NewValidationError("nr", raw.Nr, "invoice number is required")
	}
	if raw.PaymentID == "" {
		return nil, NewValidationError("payment_id", raw.PaymentID, "payment reference is required")
	}
	if len(raw.Items) == 0 {
		return nil, NewValidationError("items", len(raw.Items), "at least one item is required")
	}

	month, err := parseMonth(raw.Month)
	if err != nil {
		return nil, err
	}

	inv := &models.InvoiceInput{
		Number:      string(raw.Nr),
		Month:       month,
		PaymentID:   string(raw.PaymentID),
		RecipientID: strings.TrimSpace(raw.RecipientID),
		Items:       make([]models.LineItem, 0, len(raw.Items)),
	}

	for i, item := range raw.Items {
		if strings.TrimSpace(item.Text) == "" {
			return nil, NewValidationError(fmt.Sprintf("items[%d].text", i), item.Text, "item text is required")
		}
		line := models.LineItem{Text: item.Text}
		fields := []struct {
			name string
			raw  *scalar
			dst  **decimal.Decimal
		}{
			{"md", item.MD, &line.DayQuantity},
			{"md_rate", item.MDRate, &line.DayRate},
			{"hr", item.HR, &line.HourQuantity},
			{"hr_rate", item.HRRate, &line.HourRate},
		}
		for _, f := range fields {
			d, err := parseDecimal(fmt.Sprintf("items[%d].%s", i, f.name), f.raw)
			if err != nil {
				return nil, err
			}
			*f.dst = d
		}
		inv.Items = append(inv.Items, line)
	}

	return inv, nil
}

// parseMonth reads the month in base 10. A missing month is left as zero
// for invoice.CalculateDates to reject.
func parseMonth(s scalar) (int, error) {
	if s == "" {
		return 0, nil
	}
	m, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, NewValidationError("month", string(s), "month must be an integer")
	}
	return m, nil
}

// parseDecimal converts an optional quantity or rate. NaN, infinities and
// other non-numeric text are rejected.
func parseDecimal(field string, s *scalar) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(*s))
	if err != nil {
		return nil, NewValidationError(field, string(*s), "must be a decimal number")
	}
	return &d, nil
}
