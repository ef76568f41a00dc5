// Package quote computes installment schedules for a product purchase.
package quote

import (
	"fmt"

	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// RateTable holds the per-installment fee percentages and the flat debit fee
// for one payment device, scoped to one or more stores. It is read-only to
// the calculator; store configuration owns its lifecycle.
type RateTable struct {
	ID              string
	Name            string
	StoreIDs        []string
	MaxInstallments int
	// CreditRate maps an installment count to its fee percentage. Counts
	// without an entry carry no fee; by convention 1x is fee-free.
	CreditRate map[int]float64
	// DebitRate is configured per device but is deliberately not applied to
	// the debit option; see Compute.
	DebitRate     float64
	AcceptsDebit  bool
	AcceptsCredit bool
	Active        bool
}

// AppliesTo reports whether the table is scoped to the given store.
func (rt *RateTable) AppliesTo(storeID string) bool {
	for _, id := range rt.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// Validate checks the table's structural invariants. It returns a
// ConfigurationError on the first violation found.
func (rt *RateTable) Validate() error {
	item := fmt.Sprintf("rate table %q", rt.ID)

	if err := validation.CheckInstallmentCount(item, rt.MaxInstallments, constants.MaxInstallmentLimit); err != nil {
		return err
	}
	for count, fee := range rt.CreditRate {
		if count < 1 {
			return validation.NewConfigurationError(item, "installment count %d must be at least 1", count)
		}
		feeItem := fmt.Sprintf("%s, %dx fee", item, count)
		if err := validation.CheckFeePercent(feeItem, fee); err != nil {
			return err
		}
	}
	if err := validation.CheckFeePercent(fmt.Sprintf("%s, debit fee", item), rt.DebitRate); err != nil {
		return err
	}
	return nil
}
