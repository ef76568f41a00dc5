// Package validation provides the shared error types and primitive checks
// used when validating engine configuration and numeric input.
package validation

import "fmt"

// ConfigurationError indicates malformed configuration (rate tables,
// trade-in ranges). It is fatal to the call that raised it and is never
// produced by ordinary user input.
type ConfigurationError struct {
	Item   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Item, e.Reason)
}

// NewConfigurationError builds a ConfigurationError for the named item.
func NewConfigurationError(item, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Item: item, Reason: fmt.Sprintf(format, args...)}
}

// InvalidNumericInputError indicates a caller-supplied numeric value that is
// negative, NaN, or non-finite. Raised before any computation proceeds.
type InvalidNumericInputError struct {
	Field  string
	Reason string
}

func (e *InvalidNumericInputError) Error() string {
	return fmt.Sprintf("invalid numeric input for %s: %s", e.Field, e.Reason)
}

// NewInvalidNumericInput builds an InvalidNumericInputError for the named field.
func NewInvalidNumericInput(field, format string, args ...interface{}) *InvalidNumericInputError {
	return &InvalidNumericInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
