// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var monthAbbr = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// FormatBRL formats an amount as Brazilian reais, rounding half away from
// zero to centavos. e.g., 1234.5 -> "R$ 1.234,50", -50 -> "R$ -50,00"
func FormatBRL(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// FormatBRLCompact abbreviates large amounts for chart labels.
// e.g., 1234.5 -> "R$ 1,2 mil", 3400000 -> "R$ 3,4 mi"
func FormatBRLCompact(d decimal.Decimal) string {
	f := d.InexactFloat64()
	abs := f
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return "R$ " + decimalComma(fmt.Sprintf("%.1f", f/1_000_000_000)) + " bi"
	case abs >= 1_000_000:
		return "R$ " + decimalComma(fmt.Sprintf("%.1f", f/1_000_000)) + " mi"
	case abs >= 1_000:
		return "R$ " + decimalComma(fmt.Sprintf("%.1f", f/1_000)) + " mil"
	default:
		return "R$ " + decimalComma(fmt.Sprintf("%.0f", f))
	}
}

// FormatSignedBRL is FormatBRL with an explicit "+" for positive amounts.
func FormatSignedBRL(d decimal.Decimal) string {
	if d.Round(2).IsPositive() {
		return "+" + FormatBRL(d)
	}
	return FormatBRL(d)
}

// FormatNumber adds dot thousands separators to an integer.
// e.g., 1234567 -> "1.234.567"
func FormatNumber(n int64) string {
	return humanize.FormatInteger("#.###,", int(n))
}

// FormatPercent formats a 0-1 float as a percentage with a decimal comma.
// e.g., 0.4286 -> "42,9%"
func FormatPercent(f float64) string {
	return decimalComma(fmt.Sprintf("%.1f", f*100)) + "%"
}

// FormatMonth turns a "2006-01" bucket key into "jan/2024".
// Keys that don't parse are returned unchanged.
func FormatMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s/%d", monthAbbr[t.Month()-1], t.Year())
}

// FormatDate formats a date day-first.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// FormatPeriod formats an inclusive date range.
func FormatPeriod(first, last time.Time) string {
	if first.IsZero() && last.IsZero() {
		return "-"
	}
	return FormatDate(first) + " - " + FormatDate(last)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	remainder := len(digits) % 3
	if remainder > 0 {
		b.WriteString(digits[:remainder])
	}
	for i := remainder; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
