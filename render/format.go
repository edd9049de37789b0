/*
Package render turns reconciliation output into the artifacts people see:
the HTML e-mail body and the styled workbook attachment.

The renderer recomputes nothing — it receives the rows, the total row and
the period title and only formats them.
*/
package render

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatHours renders a decimal with two places in pt-BR convention
// ("1.234,56").
func FormatHours(d decimal.Decimal) string {
	f, _ := d.Float64()
	return ptBR.Sprintf("%.2f", f)
}
