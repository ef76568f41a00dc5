// Package quotetext renders computed quotes into the short copy-pasteable
// strings sellers send to customers. It performs no arithmetic beyond
// currency formatting.
package quotetext

import (
	"fmt"
	"strings"

	"github.com/dmarins/parcelamento/pkg/quote"
)

// FormatOption renders a single installment option as one quote line, e.g.
// "Débito: R$ 3.500,00" or "Entrada de R$ 1.000,00 + 3x de R$ 2.072,54".
func FormatOption(input quote.Input, opt quote.InstallmentOption) string {
	var line string
	if opt.Installments == 0 {
		line = fmt.Sprintf("%s: %s", opt.Label, opt.PerInstallment.BRL())
	} else {
		line = fmt.Sprintf("%s de %s (total %s)",
			opt.Label, opt.PerInstallment.BRL(), opt.TotalFinanced.BRL())
	}
	if opt.IncludesDownPayment {
		line = fmt.Sprintf("Entrada de %s + %s", input.DownPayment.BRL(), line)
	}
	return line
}

// FormatBasicQuote renders the product header and every option of the
// computed quote, one option per line.
func FormatBasicQuote(product string, input quote.Input, q quote.Quote) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s — %s", product, input.Price.BRL()))
	for _, opt := range q.Options {
		builder.WriteString("\n")
		builder.WriteString(FormatOption(input, opt))
	}
	return builder.String()
}

// FormatInstallmentQuote renders the single option matching the given label
// ("Débito", "7x"). It fails when the label is not part of the quote.
func FormatInstallmentQuote(product string, input quote.Input, q quote.Quote, label string) (string, error) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return fmt.Sprintf("%s — %s\n%s", product, input.Price.BRL(), FormatOption(input, opt)), nil
		}
	}
	return "", fmt.Errorf("quote has no option labeled %q", label)
}

// FormatTradeInQuote renders a full quote including the trade-in credit line
// for the device taken in.
func FormatTradeInQuote(product, deviceModel string, input quote.Input, q quote.Quote) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s — %s", product, input.Price.BRL()))
	if input.TradeInCredit > 0 {
		builder.WriteString(fmt.Sprintf("\n%s na troca: -%s", deviceModel, input.TradeInCredit.BRL()))
	}
	for _, opt := range q.Options {
		builder.WriteString("\n")
		builder.WriteString(FormatOption(input, opt))
	}
	return builder.String()
}
