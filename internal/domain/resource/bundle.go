package resource

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Bundle is one amount per resource kind, in ledger order.
type Bundle [Count]decimal.Decimal

// Units builds a bundle from whole-unit amounts (power, lumber, brick, concrete, steel).
func Units(power, lumber, brick, concrete, steel int64) Bundle {
	return Bundle{
		decimal.NewFromInt(power),
		decimal.NewFromInt(lumber),
		decimal.NewFromInt(brick),
		decimal.NewFromInt(concrete),
		decimal.NewFromInt(steel),
	}
}

// Of builds a bundle holding amount of a single kind.
func Of(kind Kind, amount decimal.Decimal) Bundle {
	var b Bundle
	b[kind] = amount
	return b
}

// Get returns the amount of kind
func (b Bundle) Get(kind Kind) decimal.Decimal {
	return b[kind]
}

// Add returns b + o
func (b Bundle) Add(o Bundle) Bundle {
	var r Bundle
	for i := range b {
		r[i] = b[i].Add(o[i])
	}
	return r
}

// Sub returns b - o. The result may be negative; callers check Covers first.
func (b Bundle) Sub(o Bundle) Bundle {
	var r Bundle
	for i := range b {
		r[i] = b[i].Sub(o[i])
	}
	return r
}

// Percent scales every amount by pct/100.
func (b Bundle) Percent(pct int64) Bundle {
	var r Bundle
	for i := range b {
		r[i] = shared.Percent(b[i], pct)
	}
	return r
}

// Mul scales every amount by factor, truncating at token precision.
func (b Bundle) Mul(factor decimal.Decimal) Bundle {
	var r Bundle
	for i := range b {
		r[i] = shared.Trunc(b[i].Mul(factor))
	}
	return r
}

// Covers reports whether every amount in b is at least the matching amount in cost.
func (b Bundle) Covers(cost Bundle) bool {
	for i := range b {
		if b[i].LessThan(cost[i]) {
			return false
		}
	}
	return true
}

// Shortfall returns the first kind for which b does not cover cost.
func (b Bundle) Shortfall(cost Bundle) (Kind, bool) {
	for i := range b {
		if b[i].LessThan(cost[i]) {
			return Kind(i), true
		}
	}
	return 0, false
}

// IsZero reports whether every amount is zero
func (b Bundle) IsZero() bool {
	for i := range b {
		if !b[i].IsZero() {
			return false
		}
	}
	return true
}

// HasNegative reports whether any amount is below zero
func (b Bundle) HasNegative() bool {
	for i := range b {
		if b[i].IsNegative() {
			return true
		}
	}
	return false
}

// Equal compares amounts numerically
func (b Bundle) Equal(o Bundle) bool {
	for i := range b {
		if !b[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings renders the bundle as decimal strings, for persistence and transport.
func (b Bundle) Strings() [Count]string {
	var out [Count]string
	for i := range b {
		out[i] = b[i].String()
	}
	return out
}

// ParseBundle parses up to five decimal strings into a bundle.
func ParseBundle(values []string) (Bundle, error) {
	var b Bundle
	if len(values) > Count {
		return b, fmt.Errorf("expected at most %d amounts, got %d", Count, len(values))
	}
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		d, err := shared.ParseAmount(Kind(i).String(), v)
		if err != nil {
			return Bundle{}, err
		}
		b[i] = d
	}
	return b, nil
}

func (b Bundle) String() string {
	parts := make([]string, 0, Count)
	for i := range b {
		parts = append(parts, fmt.Sprintf("%s=%s", Kind(i), b[i].String()))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
