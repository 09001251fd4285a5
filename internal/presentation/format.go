package presentation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals and a space between
// thousands groups: -1234.5 -> "-1 234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// formatBalance renders a possibly absent balance; absent prints as "0".
func formatBalance(b *float64) string {
	if b == nil {
		return "0"
	}
	return FormatMoney(decimal.NewFromFloat(*b))
}

func formatMonths(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
