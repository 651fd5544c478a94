// Package isdoc contains the ISDOC 6.0.1 document model and its XML encoding.
//
// The types mirror the element names and nesting of the ISDOC schema
// (http://isdoc.cz/namespace/2013). Only the subset needed for a plain
// domestic invoice with a single VAT rate is modelled.
package isdoc

import (
	"encoding/xml"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Namespace is the ISDOC 6 XML namespace.
	Namespace = "http://isdoc.cz/namespace/2013"

	// Version is the schema version written to the root element.
	Version = "6.0.1"

	// DocumentTypeInvoice marks a regular invoice (faktura - daňový doklad).
	DocumentTypeInvoice = 1

	// PaymentMeansBankTransfer is the UN/ECE 4461 code for credit transfer.
	PaymentMeansBankTransfer = 42

	// VATCalculationFromBottom computes VAT from the tax-exclusive price.
	VATCalculationFromBottom = 0

	// TaxSchemeVAT is the tax scheme of every party tax registration.
	TaxSchemeVAT = "VAT"

	// FileExtension is the extension of serialized documents.
	FileExtension = ".isdoc"
)

// Unit codes used for invoiced quantities.
const (
	UnitDay  = "DAY"
	UnitHour = "HUR"
)

// Invoice is the ISDOC root element.
type Invoice struct {
	XMLName xml.Name `xml:"Invoice"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`

	DocumentType  int    `xml:"DocumentType"`
	ID            string `xml:"ID"`
	UUID          string `xml:"UUID"`
	IssuingSystem string `xml:"IssuingSystem,omitempty"`
	IssueDate     Date   `xml:"IssueDate"`
	TaxPointDate  Date   `xml:"TaxPointDate"`
	VATApplicable bool   `xml:"VATApplicable"`

	ElectronicPossibilityAgreementReference string `xml:"ElectronicPossibilityAgreementReference"`

	Note              string          `xml:"Note,omitempty"`
	LocalCurrencyCode string          `xml:"LocalCurrencyCode"`
	CurrRate          decimal.Decimal `xml:"CurrRate"`
	RefCurrRate       decimal.Decimal `xml:"RefCurrRate"`

	AccountingSupplierParty PartyContainer `xml:"AccountingSupplierParty"`
	AccountingCustomerParty PartyContainer `xml:"AccountingCustomerParty"`

	InvoiceLines       InvoiceLines       `xml:"InvoiceLines"`
	TaxTotal           TaxTotal           `xml:"TaxTotal"`
	LegalMonetaryTotal LegalMonetaryTotal `xml:"LegalMonetaryTotal"`
	PaymentMeans       PaymentMeans       `xml:"PaymentMeans"`
}

// PartyContainer wraps a Party for the supplier and customer elements.
type PartyContainer struct {
	Party Party `xml:"Party"`
}

// Party is a legal entity taking part in the transaction.
type Party struct {
	PartyIdentification PartyIdentification `xml:"PartyIdentification"`
	PartyName           PartyName           `xml:"PartyName"`
	PostalAddress       PostalAddress       `xml:"PostalAddress"`
	PartyTaxScheme      PartyTaxScheme      `xml:"PartyTaxScheme"`
}

// PartyIdentification holds the company registration number (IČO).
type PartyIdentification struct {
	ID string `xml:"ID"`
}

// PartyName is the registered company name.
type PartyName struct {
	Name string `xml:"Name"`
}

// PostalAddress is the party's registered address.
type PostalAddress struct {
	StreetName     string  `xml:"StreetName"`
	BuildingNumber string  `xml:"BuildingNumber"`
	CityName       string  `xml:"CityName"`
	PostalZone     string  `xml:"PostalZone"`
	Country        Country `xml:"Country"`
}

// Country identifies a country by ISO 3166 code and name.
type Country struct {
	IdentificationCode string `xml:"IdentificationCode"`
	Name               string `xml:"Name"`
}

// PartyTaxScheme carries the party's VAT registration. CompanyID holds the
// tax identifier, or the company identifier for parties without one.
type PartyTaxScheme struct {
	CompanyID string `xml:"CompanyID"`
	TaxScheme string `xml:"TaxScheme"`
}

// InvoiceLines wraps the document lines.
type InvoiceLines struct {
	Lines []InvoiceLine `xml:"InvoiceLine"`
}

// InvoiceLine is one billed item.
type InvoiceLine struct {
	ID               string   `xml:"ID"`
	InvoicedQuantity Quantity `xml:"InvoicedQuantity"`

	LineExtensionAmount Amount `xml:"LineExtensionAmount"`
	// LineExtensionAmountTaxInclusive is written unrounded.
	LineExtensionAmountTaxInclusive decimal.Decimal `xml:"LineExtensionAmountTaxInclusive"`
	LineExtensionTaxAmount          Amount          `xml:"LineExtensionTaxAmount"`

	UnitPrice             decimal.Decimal `xml:"UnitPrice"`
	UnitPriceTaxInclusive Amount          `xml:"UnitPriceTaxInclusive"`

	ClassifiedTaxCategory TaxCategory `xml:"ClassifiedTaxCategory"`
	Item                  Item        `xml:"Item"`
}

// Quantity is an invoiced quantity with its unit of measure.
type Quantity struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

// NewQuantity formats d as a quantity in unit.
func NewQuantity(d decimal.Decimal, unit string) Quantity {
	return Quantity{UnitCode: unit, Value: d.String()}
}

// TaxCategory is the VAT classification of a line.
type TaxCategory struct {
	Percent              decimal.Decimal `xml:"Percent"`
	VATCalculationMethod int             `xml:"VATCalculationMethod"`
	VATApplicable        bool            `xml:"VATApplicable"`
}

// Item describes what a line bills for.
type Item struct {
	Description string `xml:"Description"`
}

// TaxTotal summarizes VAT over the whole document.
type TaxTotal struct {
	TaxSubTotal TaxSubTotal `xml:"TaxSubTotal"`
	TaxAmount   Amount      `xml:"TaxAmount"`
}

// TaxSubTotal is the recapitulation for one VAT rate.
type TaxSubTotal struct {
	TaxableAmount      Amount `xml:"TaxableAmount"`
	TaxAmount          Amount `xml:"TaxAmount"`
	TaxInclusiveAmount Amount `xml:"TaxInclusiveAmount"`

	AlreadyClaimedTaxableAmount      Amount `xml:"AlreadyClaimedTaxableAmount"`
	AlreadyClaimedTaxAmount          Amount `xml:"AlreadyClaimedTaxAmount"`
	AlreadyClaimedTaxInclusiveAmount Amount `xml:"AlreadyClaimedTaxInclusiveAmount"`

	DifferenceTaxableAmount      Amount `xml:"DifferenceTaxableAmount"`
	DifferenceTaxAmount          Amount `xml:"DifferenceTaxAmount"`
	DifferenceTaxInclusiveAmount Amount `xml:"DifferenceTaxInclusiveAmount"`

	TaxCategory SubTotalTaxCategory `xml:"TaxCategory"`
}

// SubTotalTaxCategory is the VAT rate of a recapitulation.
type SubTotalTaxCategory struct {
	Percent decimal.Decimal `xml:"Percent"`
}

// LegalMonetaryTotal holds the document totals.
type LegalMonetaryTotal struct {
	TaxExclusiveAmount Amount `xml:"TaxExclusiveAmount"`
	TaxInclusiveAmount Amount `xml:"TaxInclusiveAmount"`

	AlreadyClaimedTaxExclusiveAmount Amount `xml:"AlreadyClaimedTaxExclusiveAmount"`
	AlreadyClaimedTaxInclusiveAmount Amount `xml:"AlreadyClaimedTaxInclusiveAmount"`

	DifferenceTaxExclusiveAmount Amount `xml:"DifferenceTaxExclusiveAmount"`
	DifferenceTaxInclusiveAmount Amount `xml:"DifferenceTaxInclusiveAmount"`

	PayableRoundingAmount Amount `xml:"PayableRoundingAmount"`
	PaidDepositsAmount    Amount `xml:"PaidDepositsAmount"`
	PayableAmount         Amount `xml:"PayableAmount"`
}

// PaymentMeans wraps the payment instructions.
type PaymentMeans struct {
	Payment Payment `xml:"Payment"`
}

// Payment is the amount due and how to pay it.
type Payment struct {
	PaidAmount       Amount         `xml:"PaidAmount"`
	PaymentMeansCode int            `xml:"PaymentMeansCode"`
	Details          PaymentDetails `xml:"Details"`
}

// PaymentDetails identifies the payment. Bank fields are required by the
// schema but may be empty.
type PaymentDetails struct {
	PaymentDueDate Date   `xml:"PaymentDueDate"`
	ID             string `xml:"ID"`
	BankCode       string `xml:"BankCode"`
	Name           string `xml:"Name"`
	IBAN           string `xml:"IBAN"`
	BIC            string `xml:"BIC"`
	VariableSymbol string `xml:"VariableSymbol"`
}

// Amount is a monetary amount written with exactly two decimal places.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalText implements encoding.TextMarshaler.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(time.DateOnly)), nil
}
