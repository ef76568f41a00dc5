// Package money defines the minor-unit currency type used throughout the
// engine and the single parsing boundary that turns loosely-formatted input
// into validated amounts.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// Cents represents a monetary amount as an integer number of minor currency
// units. Engine operations never produce a negative amount; results are
// clamped to zero instead.
type Cents int64

// Int64 returns the raw minor-unit count.
func (c Cents) Int64() int64 {
	return int64(c)
}

// Reais returns the amount as a floating-point number of whole currency
// units. Intended for display and logging only.
func (c Cents) Reais() float64 {
	return float64(c) / constants.CentsPerReal
}

// ClampZero floors a raw minor-unit count at zero.
func ClampZero(v int64) Cents {
	if v < 0 {
		return 0
	}
	return Cents(v)
}

// FromInt validates a raw minor-unit count supplied by a caller.
func FromInt(field string, v int64) (Cents, error) {
	if v < 0 {
		return 0, validation.NewInvalidNumericInput(field, "amount %d cannot be negative", v)
	}
	return Cents(v), nil
}

// FromFloat converts a whole-unit amount (e.g. a JSON number of reais) into
// cents, rounding half-up. NaN, infinities, and negative amounts are
// rejected.
func FromFloat(field string, v float64) (Cents, error) {
	if math.IsNaN(v) {
		return 0, validation.NewInvalidNumericInput(field, "amount is NaN")
	}
	if math.IsInf(v, 0) {
		return 0, validation.NewInvalidNumericInput(field, "amount is not finite")
	}
	if v < 0 {
		return 0, validation.NewInvalidNumericInput(field, "amount %.2f cannot be negative", v)
	}
	return Cents(math.Floor(v*constants.CentsPerReal + 0.5)), nil
}

// Parse converts a user-entered currency string into cents. It accepts the
// pt-BR convention ("1.234,56"), the plain decimal convention ("1234.56"),
// and bare integers ("1234"), with an optional leading "R$".
func Parse(field, s string) (Cents, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "R$")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return 0, validation.NewInvalidNumericInput(field, "amount is empty")
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, validation.NewInvalidNumericInput(field, "amount %q cannot be negative", s)
	}

	normalized := trimmed
	if strings.Contains(trimmed, ",") {
		// pt-BR: dots are thousands separators, the comma is the decimal mark.
		normalized = strings.ReplaceAll(trimmed, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, validation.NewInvalidNumericInput(field, "amount %q is not a number", s)
	}
	return FromFloat(field, v)
}

// String implements fmt.Stringer with the raw cent count, which keeps log
// output unambiguous about units.
func (c Cents) String() string {
	return fmt.Sprintf("%d", int64(c))
}
