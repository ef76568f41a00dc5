// Package catalog exposes store configuration (rate tables, trade-in
// ranges, damage table, product prices) to the engine's callers through an
// explicit interface, keeping the engine itself a pure function of its
// arguments.
package catalog

import (
	"errors"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/quote"
	"github.com/dmarins/parcelamento/pkg/tradein"
)

var (
	ErrNoRateTable    = errors.New("no active rate table for store")
	ErrNoTradeInRange = errors.New("no trade-in range for device at store")
	ErrNoProduct      = errors.New("product not priced at store")
)

// Catalog is the read side of store configuration.
type Catalog interface {
	// RateTableForStore returns the first active rate table scoped to the
	// given store.
	RateTableForStore(storeID string) (quote.RateTable, error)
	// RateTable returns a table by its identifier regardless of store.
	RateTable(id string) (quote.RateTable, error)
	// ProductPrice returns a product's configured price at one store.
	ProductPrice(productID, storeID string) (money.Cents, error)
	// TradeInRangeFor returns the trade-in value band for a device model at
	// one store.
	TradeInRangeFor(deviceModel, storeID string) (tradein.Range, error)
	// DamageTable returns every configured damage deduction.
	DamageTable() []tradein.Deduction
}
