package token_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
)

func TestWallet_CreditDebit(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	w := token.NewWallet(shared.MustNewAddress("carol"))

	require.NoError(t, w.Credit(token.LandToken, decimal.NewFromInt(30), now))
	require.NoError(t, w.Debit(token.LandToken, decimal.NewFromInt(10), now))

	assert.True(t, w.Balance(token.LandToken).Equal(decimal.NewFromInt(20)))
	assert.True(t, w.Balance(token.AssetToken).IsZero())

	err := w.Debit(token.AssetToken, decimal.NewFromInt(1), now)
	assert.True(t, shared.IsKind(err, shared.KindInsufficient))
	assert.Contains(t, err.Error(), "insufficient asset token")
}

func TestParseKind(t *testing.T) {
	k, err := token.ParseKind("ASSET")
	require.NoError(t, err)
	assert.Equal(t, token.AssetToken, k)

	_, err = token.ParseKind("gold")
	assert.Error(t, err)
}
