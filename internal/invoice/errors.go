package invoice

import (
	"errors"
	"fmt"
)

// Invoice computation errors. All of them are fatal for the run.
var (
	// ErrNoRecipient is returned when neither the recipients table nor the
	// legacy recipient field yields a customer.
	ErrNoRecipient = errors.New("no recipient resolvable")

	// ErrInvalidMonth is returned for billing months outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidLineItem is returned when a line item has no complete
	// billing variant.
	ErrInvalidLineItem = errors.New("exactly one of (md, md_rate) or (hr, hr_rate) must be supplied")
)

// ConfigurationError reports unusable configuration or invoice parameters.
type ConfigurationError struct {
	// Op is the operation that failed (e.g., "ResolveRecipient").
	Op string

	// Field names the offending setting, if any.
	Field string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invoice: %s: %v", e.Op, e.Err)
	if e.Field != "" {
		msg = fmt.Sprintf("invoice: %s: %s: %v", e.Op, e.Field, e.Err)
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(op, field string, err error, details string) *ConfigurationError {
	return &ConfigurationError{
		Op:      op,
		Field:   field,
		Err:     err,
		Details: details,
	}
}

// InvalidLineItemError identifies a line item without a usable billing
// variant by its position and description.
type InvalidLineItemError struct {
	Index int // 1-based
	Text  string
	Err   error
}

// Error implements the error interface.
func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invoice: line item %d %q: %v", e.Index, e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidLineItemError) Unwrap() error {
	return e.Err
}

// NewInvalidLineItemError creates a new InvalidLineItemError.
func NewInvalidLineItemError(index int, text string) *InvalidLineItemError {
	return &InvalidLineItemError{
		Index: index,
		Text:  text,
		Err:   ErrInvalidLineItem,
	}
}
