// Package money provides integer-scaled currency arithmetic.
// All amounts are carried as int64 cents; rates as integer basis points.
// Rounding to currency precision happens only when a line or total is emitted.
// This is part of the platform layer and contains no business logic.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a monetary amount in integer cents.
type Cents int64

// bpsScale is the denominator for basis-point rates (10000 bps = 100%).
const bpsScale = 10000

// ParseCents parses a decimal string such as "20.77" or "1,50" into cents.
// At most two fraction digits are accepted; more precision in a catalog
// price is a data defect, not something to round away silently.
func ParseCents(value string) (Cents, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if trimmed == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(trimmed, "-") {
		negative = true
		trimmed = trimmed[1:]
	}

	whole, frac := trimmed, ""
	if idx := strings.IndexByte(trimmed, '.'); idx >= 0 {
		whole, frac = trimmed[:idx], trimmed[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has sub-cent precision", value)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Cents(total), nil
}

// String formats the amount with two decimal places.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Round converts a float cent amount to whole cents, half away from zero.
// Used when a computation has an inherently fractional factor (area, length).
func Round(v float64) Cents {
	return Cents(math.Round(v))
}

// MulInt multiplies an amount by an integer quantity without precision loss.
func (c Cents) MulInt(quantity int) Cents {
	return c * Cents(quantity)
}

// MulFloat multiplies an amount by a dimensional factor (meters, square
// meters) and rounds the result to whole cents.
func (c Cents) MulFloat(factor float64) Cents {
	return Round(float64(c) * factor)
}

// ApplyBps returns the basis-point share of an amount, rounded half up.
// 2200 bps of 10000 cents is 2200 cents.
func (c Cents) ApplyBps(bps int) Cents {
	product := int64(c) * int64(bps)
	if product >= 0 {
		return Cents((product + bpsScale/2) / bpsScale)
	}
	return Cents((product - bpsScale/2) / bpsScale)
}

// PercentToBps converts a percentage with up to two decimals to basis points.
func PercentToBps(percent float64) int {
	return int(math.Round(percent * 100))
}
