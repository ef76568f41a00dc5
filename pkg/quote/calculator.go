package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmarins/parcelamento/pkg/constants"
	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/validation"
)

// Input carries the amounts a quote is computed from. All values are in
// minor currency units. Down payment plus trade-in credit may exceed the
// price; the financed base clamps at zero rather than going negative.
type Input struct {
	Price         money.Cents
	DownPayment   money.Cents
	TradeInCredit money.Cents
}

// InstallmentOption is one way to pay the financed base: debit (no term) or
// Installments equal payments with the configured fee applied.
type InstallmentOption struct {
	// Label is the display name, e.g. "Débito" or "7x".
	Label string
	// Installments is the payment count; zero for the debit option.
	Installments int
	// PerInstallment is the value of each payment, rounded half-up to cents.
	PerInstallment money.Cents
	// TotalFinanced is the base value with the fee applied, rounded half-up.
	TotalFinanced money.Cents
	// IncludesDownPayment tells the formatter to prepend the down payment.
	IncludesDownPayment bool
}

// Quote is the full computed schedule for one Input against one RateTable.
// Options are ordered Débito first, then 1x..MaxInstallments ascending; the
// ordering is a stable contract consumed by display and text generation.
type Quote struct {
	Base    money.Cents
	Options []InstallmentOption
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Compute produces the installment schedule for the given input. It is a
// pure function: the same input always yields an identical Quote.
//
// The debit option is always the raw base value. The configured DebitRate is
// intentionally not applied here; changing that requires a decision from the
// fee-table owners (see DESIGN.md).
func Compute(input Input, table RateTable) (Quote, error) {
	if err := validateInput(input); err != nil {
		return Quote{}, err
	}
	if err := table.Validate(); err != nil {
		return Quote{}, err
	}

	base := money.ClampZero(input.Price.Int64() - input.DownPayment.Int64() - input.TradeInCredit.Int64())
	withDown := input.DownPayment > 0

	options := make([]InstallmentOption, 0, table.MaxInstallments+1)

	if table.AcceptsDebit {
		options = append(options, InstallmentOption{
			Label:               constants.DebitLabel,
			Installments:        0,
			PerInstallment:      base,
			TotalFinanced:       base,
			IncludesDownPayment: withDown,
		})
	}

	if table.AcceptsCredit {
		baseDec := decimal.NewFromInt(base.Int64())
		for i := 1; i <= table.MaxInstallments; i++ {
			fee := table.CreditRate[i]
			divisor := one.Sub(decimal.NewFromFloat(fee).Div(hundred))
			totalExact := baseDec.Div(divisor)

			options = append(options, InstallmentOption{
				Label:               fmt.Sprintf("%dx", i),
				Installments:        i,
				PerInstallment:      roundCents(totalExact.Div(decimal.NewFromInt(int64(i)))),
				TotalFinanced:       roundCents(totalExact),
				IncludesDownPayment: withDown,
			})
		}
	}

	return Quote{Base: base, Options: options}, nil
}

// roundCents rounds a decimal cent amount half-up to a whole cent. Amounts
// here are never negative, so round-half-away-from-zero is round-half-up.
func roundCents(d decimal.Decimal) money.Cents {
	return money.Cents(d.Round(0).IntPart())
}

func validateInput(input Input) error {
	fields := []struct {
		name  string
		value money.Cents
	}{
		{"priceCents", input.Price},
		{"downPaymentCents", input.DownPayment},
		{"tradeInCreditCents", input.TradeInCredit},
	}
	for _, f := range fields {
		if f.value < 0 {
			return validation.NewInvalidNumericInput(f.name, "amount %d cannot be negative", f.value.Int64())
		}
	}
	return nil
}
