package shared

import "github.com/shopspring/decimal"

// Precision is the number of decimals carried by every balance, durability and
// multiplier value ("token decimals").
const Precision int32 = 18

var hundred = decimal.NewFromInt(100)

// Hundred is the percentage scale.
func Hundred() decimal.Decimal { return hundred }

// Units converts whole units into a fixed-point amount.
func Units(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Quo divides a by b, truncating toward zero at Precision decimals.
func Quo(a, b decimal.Decimal) decimal.Decimal {
	q, _ := a.QuoRem(b, Precision)
	return q
}

// Percent returns pct percent of a, truncated at Precision decimals.
func Percent(a decimal.Decimal, pct int64) decimal.Decimal {
	return Quo(a.Mul(decimal.NewFromInt(pct)), hundred)
}

// Trunc drops any digits beyond Precision.
func Trunc(a decimal.Decimal) decimal.Decimal {
	return a.Truncate(Precision)
}

// ParseAmount parses a decimal string and rejects negative or over-precise values.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewValidationError(field, "not a number: "+raw)
	}
	if d.IsNegative() {
		return decimal.Zero, NewValidationError(field, "cannot be negative")
	}
	if !d.Equal(Trunc(d)) {
		return decimal.Zero, NewValidationError(field, "more than 18 decimals")
	}
	return d, nil
}
