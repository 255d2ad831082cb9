package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with thousands separators and two decimals,
// prefixed by the currency code, e.g. "EUR 1,234.50".
func FormatAmount(amount decimal.Decimal, currency string) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")
	out := groupThousands(intPart) + "." + decPart
	if negative {
		out = "-" + out
	}
	if currency == "" {
		return out
	}
	return currency + " " + out
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercentage renders a percentage without trailing zeros, e.g. "85%" or "12.5%".
// NaN renders as "NaN%".
func FormatPercentage(v float64) string {
	if math.IsNaN(v) {
		return "NaN%"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "%"
}
