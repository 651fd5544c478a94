package models

// Address is a postal address of a party.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string // ISO 3166-1 alpha-2, e.g. "CZ"
}

// CompanyConfig describes the supplier or one recipient of an invoice.
type CompanyConfig struct {
	Name        string
	CompanyID   string // IČO
	TaxID       string // DIČ, empty for parties that are not VAT registered
	Address     Address
	BankAccount string // optional
}

// NamedCompany is one entry of the recipients table.
type NamedCompany struct {
	Key     string
	Company CompanyConfig
}

// Recipients keeps recipients in declaration order. The first entry is the
// default recipient, so this must not be a map.
type Recipients []NamedCompany

// Lookup returns the recipient registered under key.
func (r Recipients) Lookup(key string) (CompanyConfig, bool) {
	for _, entry := range r {
		if entry.Key == key {
			return entry.Company, true
		}
	}
	return CompanyConfig{}, false
}

// First returns the first declared recipient.
func (r Recipients) First() (CompanyConfig, bool) {
	if len(r) == 0 {
		return CompanyConfig{}, false
	}
	return r[0].Company, true
}

// Keys returns recipient keys in declaration order.
func (r Recipients) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, entry := range r {
		keys = append(keys, entry.Key)
	}
	return keys
}

// Config is the supplier/recipient configuration shared by every invoice.
type Config struct {
	Supplier   CompanyConfig
	Recipients Recipients
	// Recipient is the legacy single-recipient form, used when Recipients
	// has no match.
	Recipient *CompanyConfig
	DueDays   int
	Currency  string
}
