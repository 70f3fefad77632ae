package receipt

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatNumber renders v with thousands separators, at most three decimals
// and no trailing zeros: 1000 -> "1,000", 1000.5 -> "1,000.5".
func FormatNumber(v decimal.Decimal) string {
	return group(v.Round(3), v.Round(3).String())
}

// FormatWeight is FormatNumber; weights carry up to three decimals.
func FormatWeight(v decimal.Decimal) string {
	return FormatNumber(v)
}

// FormatCurrency always renders exactly two decimals: 1000 -> "1,000.00".
func FormatCurrency(v decimal.Decimal) string {
	return group(v.Round(2), v.Round(2).StringFixed(2))
}

// FormatPlain is the export form of a currency value: two decimals and no
// separators.
func FormatPlain(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func group(v decimal.Decimal, s string) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		s = strings.TrimPrefix(s, "-")
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	whole, err := decimal.NewFromString(intPart)
	if err != nil {
		return sign + s
	}
	out := sign + humanize.Comma(whole.IntPart())
	if hasFrac {
		out += "." + frac
	}
	return out
}
