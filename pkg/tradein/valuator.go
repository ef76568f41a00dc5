// Package tradein bounds the credit a used device may receive and validates
// proposed trade-in values against the store-configured range.
package tradein

import (
	"fmt"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// Range is the store-configured value band for one device model. Min and Max
// must be positive and strictly ordered.
type Range struct {
	DeviceModel string
	StoreID     string
	Min         money.Cents
	Max         money.Cents
}

// Validate checks the range's structural invariants.
func (r *Range) Validate() error {
	item := fmt.Sprintf("trade-in range for %q", r.DeviceModel)
	if r.Min <= 0 {
		return validation.NewConfigurationError(item, "minimum value %d must be positive", r.Min.Int64())
	}
	if r.Max <= 0 {
		return validation.NewConfigurationError(item, "maximum value %d must be positive", r.Max.Int64())
	}
	if r.Min >= r.Max {
		return validation.NewConfigurationError(item, "minimum %d must be below maximum %d", r.Min.Int64(), r.Max.Int64())
	}
	return nil
}

// Deduction is a named defect with a fixed currency penalty.
type Deduction struct {
	Name     string
	Discount money.Cents
}

// SuggestedRange is the value band after itemized deductions, floored at
// zero on both ends.
type SuggestedRange struct {
	Min money.Cents
	Max money.Cents
}

// FailureKind identifies which validation rule rejected a proposed value.
type FailureKind string

const (
	FailureNone                   FailureKind = ""
	FailureInvalidValue           FailureKind = "invalid_value"
	FailureExceedsStoreMaximum    FailureKind = "exceeds_store_maximum"
	FailureExceedsAdjustedMaximum FailureKind = "exceeds_adjusted_maximum"
	FailureBelowStoreMinimum      FailureKind = "below_store_minimum"
)

// ValidationResult is the outcome of judging a proposed trade-in value.
// Rejections are expected user-input outcomes, not errors.
type ValidationResult struct {
	Valid   bool
	Kind    FailureKind
	Message string
}

// TotalDeduction sums the selected deductions.
func TotalDeduction(deductions []Deduction) money.Cents {
	var total money.Cents
	for _, d := range deductions {
		total += d.Discount
	}
	return total
}

// Suggest computes the value band after applying the selected deductions
// against both ends of the range.
func Suggest(r Range, deductions []Deduction) (SuggestedRange, error) {
	if err := r.Validate(); err != nil {
		return SuggestedRange{}, err
	}
	if err := validateDeductions(deductions); err != nil {
		return SuggestedRange{}, err
	}

	total := TotalDeduction(deductions).Int64()
	return SuggestedRange{
		Min: money.ClampZero(r.Min.Int64() - total),
		Max: money.ClampZero(r.Max.Int64() - total),
	}, nil
}

// Validate judges a proposed trade-in value against the range and the
// selected deductions. Rules are checked in a fixed order and the first
// failing rule wins, so the caller always gets a single deterministic
// message. A proposed value of exactly zero means "trade-in declined" and
// bypasses the minimum check.
func Validate(r Range, deductions []Deduction, proposed money.Cents) (ValidationResult, error) {
	suggested, err := Suggest(r, deductions)
	if err != nil {
		return ValidationResult{}, err
	}

	switch {
	case proposed < 0:
		return failure(FailureInvalidValue, "o valor do aparelho não pode ser negativo"), nil
	case proposed > r.Max:
		return failure(FailureExceedsStoreMaximum,
			fmt.Sprintf("o valor excede o máximo da loja de %s", r.Max.BRL())), nil
	case proposed > suggested.Max:
		return failure(FailureExceedsAdjustedMaximum,
			fmt.Sprintf("com os descontos por avarias o valor máximo é %s", suggested.Max.BRL())), nil
	case proposed > 0 && proposed < r.Min:
		return failure(FailureBelowStoreMinimum,
			fmt.Sprintf("o valor mínimo da loja é %s", r.Min.BRL())), nil
	}
	return ValidationResult{Valid: true}, nil
}

func failure(kind FailureKind, message string) ValidationResult {
	return ValidationResult{Valid: false, Kind: kind, Message: message}
}

func validateDeductions(deductions []Deduction) error {
	for _, d := range deductions {
		if d.Discount < 0 {
			return validation.NewConfigurationError(
				fmt.Sprintf("damage deduction %q", d.Name),
				"discount %d cannot be negative", d.Discount.Int64())
		}
	}
	return nil
}
