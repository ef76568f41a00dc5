package money

import (
	"fmt"
	"strings"

	"github.com/dmarins/parcelamento/pkg/constants"
)

// BRL returns the amount formatted with the currency symbol and pt-BR
// separators (e.g., "R$ 1.234,56").
func (c Cents) BRL() string {
	return "R$ " + c.Numeric()
}

// Numeric returns the amount with pt-BR separators but without a currency
// symbol (e.g., "1.234,56").
func (c Cents) Numeric() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		// Engine output never goes negative, but raw deltas may.
		sign = "-"
		v = -v
	}

	intPart := fmt.Sprintf("%d", v/constants.CentsPerReal)
	decPart := fmt.Sprintf("%02d", v%constants.CentsPerReal)

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return sign + intPart + "," + decPart
}
