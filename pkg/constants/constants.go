// Package constants provides shared constants for the parcelamento engine.
package constants

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CentsPerReal is the number of minor currency units per real
	CentsPerReal = 100

	// MaxInstallmentLimit is the largest installment count a rate table may offer
	MaxInstallmentLimit = 24

	// DebitLabel is the display label of the debit payment option
	DebitLabel = "Débito"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
