package catalog

import (
	"fmt"

	"github.com/dmarins/parcelamento/internal/config"
	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/quote"
	"github.com/dmarins/parcelamento/pkg/tradein"
)

// Memory is an in-memory Catalog built once from loaded configuration. All
// lookups read immutable data, so it is safe for concurrent use.
type Memory struct {
	tables     []quote.RateTable
	tablesByID map[string]quote.RateTable
	ranges     map[rangeKey]tradein.Range
	prices     map[priceKey]money.Cents
	damages    []tradein.Deduction
}

type rangeKey struct {
	deviceModel string
	storeID     string
}

type priceKey struct {
	productID string
	storeID   string
}

// NewMemory converts and validates the loaded configuration. Malformed rate
// tables or ranges surface here as ConfigurationErrors.
func NewMemory(conf *config.Configuration) (*Memory, error) {
	m := &Memory{
		tablesByID: make(map[string]quote.RateTable, len(conf.RateTables)),
		ranges:     make(map[rangeKey]tradein.Range, len(conf.TradeInRanges)),
		prices:     make(map[priceKey]money.Cents),
	}

	for _, rt := range conf.RateTables {
		table, err := rt.ToEngine()
		if err != nil {
			return nil, err
		}
		if err := table.Validate(); err != nil {
			return nil, err
		}
		m.tables = append(m.tables, table)
		m.tablesByID[table.ID] = table
	}

	for _, tr := range conf.TradeInRanges {
		r := tr.ToEngine()
		if err := r.Validate(); err != nil {
			return nil, err
		}
		m.ranges[rangeKey{tr.DeviceModel, tr.StoreID}] = r
	}

	for _, p := range conf.Products {
		for storeID, cents := range p.Prices {
			price, err := money.FromInt(fmt.Sprintf("product %s price", p.ID), cents)
			if err != nil {
				return nil, err
			}
			m.prices[priceKey{p.ID, storeID}] = price
		}
	}

	for _, dt := range conf.DamageTypes {
		m.damages = append(m.damages, dt.ToEngine())
	}

	return m, nil
}

func (m *Memory) RateTableForStore(storeID string) (quote.RateTable, error) {
	for _, table := range m.tables {
		if table.Active && table.AppliesTo(storeID) {
			return table, nil
		}
	}
	return quote.RateTable{}, fmt.Errorf("%w: %s", ErrNoRateTable, storeID)
}

func (m *Memory) RateTable(id string) (quote.RateTable, error) {
	table, ok := m.tablesByID[id]
	if !ok {
		return quote.RateTable{}, fmt.Errorf("%w: %s", ErrNoRateTable, id)
	}
	return table, nil
}

func (m *Memory) ProductPrice(productID, storeID string) (money.Cents, error) {
	price, ok := m.prices[priceKey{productID, storeID}]
	if !ok {
		return 0, fmt.Errorf("%w: %s at %s", ErrNoProduct, productID, storeID)
	}
	return price, nil
}

func (m *Memory) TradeInRangeFor(deviceModel, storeID string) (tradein.Range, error) {
	r, ok := m.ranges[rangeKey{deviceModel, storeID}]
	if !ok {
		return tradein.Range{}, fmt.Errorf("%w: %s at %s", ErrNoTradeInRange, deviceModel, storeID)
	}
	return r, nil
}

func (m *Memory) DamageTable() []tradein.Deduction {
	out := make([]tradein.Deduction, len(m.damages))
	copy(out, m.damages)
	return out
}
