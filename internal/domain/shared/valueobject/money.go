package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/takibi/backend/internal/domain/shared"
)

// Monetary amounts are carried as an integer number of kuruş (cents).
// Display formatting groups thousands with a dot, uses a comma for the
// decimal separator, and appends the lira sign: "12.345,67 ₺".

// LiraSign is the currency suffix used in display strings.
const LiraSign = "₺"

var hundred = decimal.NewFromInt(100)

// ParseCents converts a user-entered amount into cents.
// It tolerates the lira sign, ordinary and thin spaces, thousands
// separators, and either comma or dot as the decimal separator.
// Returns ErrInvalidMoney on anything that cannot be read as a number.
func ParseCents(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, LiraSign, "")
	cleaned = strings.ReplaceAll(cleaned, "TL", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, shared.ErrInvalidMoney
	}

	cleaned = normalizeSeparators(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, shared.ErrInvalidMoney
	}
	return roundHalfUpToCents(d), nil
}

// normalizeSeparators rewrites a locale-formatted number into the
// canonical dot-decimal form decimal.NewFromString accepts.
//
// Rules: when both separators appear, the right-most one is the decimal
// separator. A lone comma is always decimal. A lone dot is decimal only
// when it is not positioned like a thousands group ("1.234" is one
// thousand two hundred thirty-four, "1.5" is one and a half).
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// CentsFromFloat converts a legacy float lira amount into cents with
// half-up rounding. Used by the schema bootstrap when mirroring old
// float columns.
func CentsFromFloat(v float64) int64 {
	return roundHalfUpToCents(decimal.NewFromFloat(v))
}

// CentsToDecimal returns cents as an exact decimal lira amount.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// FormatCents renders cents as a display string: "12.345,67 ₺".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := decimal.NewFromInt(whole).String()
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(decimal.NewFromInt(frac).String())
	b.WriteByte(' ')
	b.WriteString(LiraSign)
	return b.String()
}

// PercentageCents computes round_half_up(base × rate / 100) in cents.
// The intermediate math runs on exact decimals so that rates like 12.5
// do not drift.
func PercentageCents(baseCents int64, rate float64) int64 {
	base := decimal.NewFromInt(baseCents)
	return base.Mul(decimal.NewFromFloat(rate)).
		Div(hundred).
		Round(0).
		IntPart()
}

// SplitCents divides a total into n equal half-up shares; the last
// share absorbs the rounding remainder so the shares sum to the total.
// Each share is clamped to what is still undistributed, so a total
// smaller than n never drives a share past zero.
func SplitCents(totalCents int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	share := decimal.NewFromInt(totalCents).
		Div(decimal.NewFromInt(int64(n))).
		Round(0).
		IntPart()
	out := make([]int64, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		remaining := totalCents - sum
		if (share > 0 && share > remaining) || (share < 0 && share < remaining) {
			share = remaining
		}
		out[i] = share
		sum += share
	}
	out[n-1] = totalCents - sum
	return out
}

func roundHalfUpToCents(d decimal.Decimal) int64 {
	// decimal.Round is half away from zero, which matches the half-up
	// behaviour of the accounting math for the non-negative amounts the
	// ledger stores.
	return d.Mul(hundred).Round(0).IntPart()
}
