// Package bulk applies percentage, fixed-delta, or literal-override
// adjustments to numeric fields across many entities and stores in one pass.
package bulk

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// Mode selects how an adjustment is computed.
type Mode string

const (
	ModePercentage     Mode = "percentage"
	ModeFixed          Mode = "fixed"
	ModeCustomOverride Mode = "customOverride"
)

// TargetKey identifies one adjustable value: a field of one entity at one
// store. Adjustments are independent per key; editing store A never reads or
// mutates store B's value.
type TargetKey struct {
	EntityID string
	StoreID  string
	Field    string
}

func (k TargetKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.EntityID, k.StoreID, k.Field)
}

// Spec describes one batch adjustment: the mode, the targeted entities,
// stores, and fields, and the per-field deltas (or per-key overrides).
type Spec struct {
	Mode      Mode
	EntityIDs []string
	StoreIDs  []string
	Fields    []string
	// PercentDeltas holds one percentage delta per targeted field when Mode
	// is percentage. Negative deltas are discounts.
	PercentDeltas map[string]float64
	// FixedDeltas holds one cent delta per targeted field when Mode is fixed.
	FixedDeltas map[string]int64
	// Overrides holds the literal replacement value per target key when Mode
	// is customOverride.
	Overrides map[TargetKey]int64
}

// Validate rejects a batch before any value is touched: unknown mode, empty
// entity/store/field selections, or missing deltas all fail the whole spec.
func (s *Spec) Validate() error {
	switch s.Mode {
	case ModePercentage, ModeFixed, ModeCustomOverride:
	default:
		return validation.NewConfigurationError("bulk adjustment", "unknown mode %q", s.Mode)
	}
	if len(s.EntityIDs) == 0 {
		return validation.NewConfigurationError("bulk adjustment", "no entities selected")
	}
	if len(s.StoreIDs) == 0 {
		return validation.NewConfigurationError("bulk adjustment", "no stores selected")
	}
	if len(s.Fields) == 0 {
		return validation.NewConfigurationError("bulk adjustment", "no fields selected")
	}

	if s.Mode == ModePercentage {
		for _, field := range s.Fields {
			delta, ok := s.PercentDeltas[field]
			if !ok {
				return validation.NewConfigurationError("bulk adjustment", "no percentage delta for field %q", field)
			}
			if math.IsNaN(delta) || math.IsInf(delta, 0) {
				return validation.NewInvalidNumericInput(field, "percentage delta is not a finite number")
			}
		}
	}
	if s.Mode == ModeFixed {
		for _, field := range s.Fields {
			if _, ok := s.FixedDeltas[field]; !ok {
				return validation.NewConfigurationError("bulk adjustment", "no fixed delta for field %q", field)
			}
		}
	}
	return nil
}

// ItemOutcome is the result of adjusting one target key. Failures carry the
// error; the rest of the batch proceeds regardless.
type ItemOutcome struct {
	Key      TargetKey
	Previous money.Cents
	Value    money.Cents
	Err      error
}

// Report collects per-item outcomes so the caller can present partial
// success ("N of M succeeded"). Batches are not transactional: a failure on
// one item never rolls back the others.
type Report struct {
	Items     []ItemOutcome
	Succeeded int
	Failed    int
}

// Summary renders the partial-success line for the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d of %d adjustments succeeded", r.Succeeded, len(r.Items))
}

// Engine applies bulk adjustments. It holds no state between calls.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a bulk adjustment engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ApplyAdjustment computes the adjusted value for one target key. The result
// is clamped at zero in every mode.
func (e *Engine) ApplyAdjustment(spec Spec, key TargetKey, current money.Cents) (money.Cents, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if current < 0 {
		return 0, validation.NewInvalidNumericInput(key.Field, "current value %d cannot be negative", current.Int64())
	}
	return applyOne(spec, key, current)
}

// ApplyBatch adjusts every (entity × field × store) combination the spec
// selects, reading current values from the given map. Validation is
// all-or-nothing; application is per-item with outcomes collected into the
// report in selection order.
func (e *Engine) ApplyBatch(spec Spec, values map[TargetKey]money.Cents) (Report, error) {
	if err := spec.Validate(); err != nil {
		return Report{}, err
	}

	var report Report
	for _, entityID := range spec.EntityIDs {
		for _, field := range spec.Fields {
			for _, storeID := range spec.StoreIDs {
				key := TargetKey{EntityID: entityID, StoreID: storeID, Field: field}
				outcome := ItemOutcome{Key: key}

				current, ok := values[key]
				switch {
				case !ok:
					outcome.Err = fmt.Errorf("no current value for %s", key)
				case current < 0:
					outcome.Err = validation.NewInvalidNumericInput(key.Field,
						"current value %d cannot be negative", current.Int64())
				default:
					outcome.Previous = current
					outcome.Value, outcome.Err = applyOne(spec, key, current)
				}

				if outcome.Err != nil {
					report.Failed++
					e.logger.Debug("bulk adjustment item failed",
						zap.String("op", "bulk.ApplyBatch"),
						zap.String("target", key.String()),
						zap.Error(outcome.Err),
					)
				} else {
					report.Succeeded++
				}
				report.Items = append(report.Items, outcome)
			}
		}
	}
	return report, nil
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

func applyOne(spec Spec, key TargetKey, current money.Cents) (money.Cents, error) {
	switch spec.Mode {
	case ModePercentage:
		factor := one.Add(decimal.NewFromFloat(spec.PercentDeltas[key.Field]).Div(hundred))
		adjusted := decimal.NewFromInt(current.Int64()).Mul(factor).Round(0)
		return money.ClampZero(adjusted.IntPart()), nil
	case ModeFixed:
		return money.ClampZero(current.Int64() + spec.FixedDeltas[key.Field]), nil
	case ModeCustomOverride:
		value, ok := spec.Overrides[key]
		if !ok {
			return 0, fmt.Errorf("no override value for %s", key)
		}
		return money.ClampZero(value), nil
	}
	return 0, validation.NewConfigurationError("bulk adjustment", "unknown mode %q", spec.Mode)
}
