package validation

import "math"

// CheckFeePercent validates a per-installment fee percentage. Fees are
// constrained to [0, 100): a fee of 100% or more would make the financed
// total undefined.
func CheckFeePercent(item string, fee float64) error {
	if math.IsNaN(fee) || math.IsInf(fee, 0) {
		return NewConfigurationError(item, "fee percentage is not a finite number")
	}
	if fee < 0 {
		return NewConfigurationError(item, "fee percentage %.2f cannot be negative", fee)
	}
	if fee >= 100 {
		return NewConfigurationError(item, "fee percentage %.2f must be below 100", fee)
	}
	return nil
}

// CheckInstallmentCount validates a rate table's maximum installment count
// against the given upper bound.
func CheckInstallmentCount(item string, count, limit int) error {
	if count < 1 {
		return NewConfigurationError(item, "maxInstallments must be at least 1, got %d", count)
	}
	if count > limit {
		return NewConfigurationError(item, "maxInstallments %d exceeds the limit of %d", count, limit)
	}
	return nil
}
