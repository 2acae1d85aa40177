package resource_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want resource.Kind
	}{
		{"power", resource.Power},
		{"LUMBER_MILL", resource.Lumber},
		{" brick ", resource.Brick},
		{"3", resource.Concrete},
		{"steel_mill", resource.Steel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resource.ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resource.ParseKind("gold")
	assert.Error(t, err)
	_, err = resource.ParseKind("5")
	assert.Error(t, err)
}

func TestBundle_CoversAndShortfall(t *testing.T) {
	have := resource.Units(10, 5, 0, 0, 0)

	assert.True(t, have.Covers(resource.Units(10, 5, 0, 0, 0)))
	assert.False(t, have.Covers(resource.Units(0, 0, 1, 0, 0)))

	kind, short := have.Shortfall(resource.Units(1, 6, 1, 0, 0))
	assert.True(t, short)
	assert.Equal(t, resource.Lumber, kind, "first short kind in ledger order")

	_, short = have.Shortfall(resource.Units(1, 1, 0, 0, 0))
	assert.False(t, short)
}

func TestBundle_Arithmetic(t *testing.T) {
	a := resource.Units(8, 4, 3, 2, 1)

	assert.True(t, resource.Units(16, 8, 6, 4, 2).Equal(a.Add(a)))
	assert.True(t, a.Sub(resource.Units(9, 0, 0, 0, 0)).HasNegative())
	assert.True(t, a.Sub(a).IsZero())

	quarter := resource.Units(10, 5, 0, 0, 0).Percent(25)
	assert.Equal(t, "2.5", quarter.Get(resource.Power).String())
	assert.Equal(t, "1.25", quarter.Get(resource.Lumber).String())

	third := resource.Units(1, 0, 0, 0, 0).Mul(shared.Quo(decimal.NewFromInt(1), decimal.NewFromInt(3)))
	assert.Equal(t, "0.333333333333333333", third.Get(resource.Power).String())
}

func TestParseBundle(t *testing.T) {
	b, err := resource.ParseBundle([]string{"1.5", "", "2"})
	require.NoError(t, err)
	assert.Equal(t, "[POWER=1.5 LUMBER=0 BRICK=2 CONCRETE=0 STEEL=0]", b.String())

	_, err = resource.ParseBundle([]string{"1", "2", "3", "4", "5", "6"})
	assert.Error(t, err)

	_, err = resource.ParseBundle([]string{"-1"})
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))
}

func TestSelector(t *testing.T) {
	var none resource.Selector
	assert.False(t, none.Any())

	s := resource.Selector{true, false, true, false, true}
	assert.True(t, s.Any())
	assert.Equal(t, []resource.Kind{resource.Brick, resource.Steel}, s.Kinds(), "slot 0 is the token reward, not a kind")
}
