package stake_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/stake"
)

func TestPosition_DepositAndWithdraw(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := stake.NewPosition(4)

	require.NoError(t, p.Deposit(decimal.NewFromInt(100), now))
	assert.True(t, p.IsStaked())

	err := p.Withdraw(decimal.NewFromInt(150), now)
	assert.EqualError(t, err, "withdraw more than balance")
	assert.True(t, shared.IsKind(err, shared.KindBounds))

	require.NoError(t, p.Withdraw(decimal.NewFromInt(100), now))
	assert.False(t, p.IsStaked())
}

func TestPosition_RejectsEmptyAmounts(t *testing.T) {
	p := stake.NewPosition(4)

	assert.EqualError(t, p.Deposit(decimal.Zero, time.Time{}), "no deposit")
	assert.EqualError(t, p.Withdraw(decimal.Zero, time.Time{}), "no withdraw")
}
