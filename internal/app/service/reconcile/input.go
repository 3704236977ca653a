package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizePhone turns free-form phone input into the +<digits> form the
// backend expects. Ten digits or fewer without a leading 1 are taken as a US
// number and get +1 prepended.
func NormalizePhone(input string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)

	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "1"):
		return "+" + digits
	case len(digits) <= 10:
		return "+1" + digits
	default:
		return "+" + digits
	}
}

var hundred = decimal.NewFromInt(100)

// ParseAmount reads a dollar amount such as "25" or "25.00".
func ParseAmount(input string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(input))
}

// ToMinorUnits converts dollars to cents, rounding half away from zero.
// ok is false when the cents do not fit in an int64.
func ToMinorUnits(dollars decimal.Decimal) (cents int64, ok bool) {
	m := dollars.Mul(hundred).Round(0)
	if !m.BigInt().IsInt64() {
		return 0, false
	}
	return m.IntPart(), true
}
