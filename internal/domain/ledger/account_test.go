package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

var (
	bob = shared.MustNewAddress("bob")
	at  = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func TestAccount_CreditThenDebit(t *testing.T) {
	// Arrange
	account := ledger.NewAccount(bob)
	houseID := int64(3)

	// Act
	credit, err := account.Credit(at, ledger.EntryTypeAdminCredit, nil, resource.Units(10, 20, 0, 0, 0), "bootstrap")
	require.NoError(t, err)
	debit, err := account.Debit(at, ledger.EntryTypeUpgrade, &houseID, resource.Units(5, 5, 0, 0, 0), "upgrade")
	require.NoError(t, err)

	// Assert
	assert.True(t, resource.Units(5, 15, 0, 0, 0).Equal(account.Balances()))
	assert.Equal(t, ledger.CategoryAdmin, credit.Category())
	assert.Equal(t, ledger.CategoryInvestment, debit.Category())
	id, ok := debit.HouseID()
	assert.True(t, ok)
	assert.Equal(t, houseID, id)
	assert.True(t, resource.Units(10, 20, 0, 0, 0).Equal(debit.BalanceBefore()))
	assert.True(t, resource.Units(5, 15, 0, 0, 0).Equal(debit.BalanceAfter()))
}

func TestAccount_DebitRejectsOverdraw(t *testing.T) {
	account := ledger.NewAccount(bob)
	_, err := account.Credit(at, ledger.EntryTypeAdminCredit, nil, resource.Units(1, 1, 1, 1, 1), "")
	require.NoError(t, err)

	_, err = account.Debit(at, ledger.EntryTypeRepair, nil, resource.Units(0, 0, 2, 0, 0), "repair")

	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInsufficient))
	assert.Contains(t, err.Error(), "insufficient brick")
	assert.True(t, resource.Units(1, 1, 1, 1, 1).Equal(account.Balances()), "balances unchanged")
}

func TestAccount_ZeroMovementsRecordNothing(t *testing.T) {
	account := ledger.NewAccount(bob)

	entry, err := account.Debit(at, ledger.EntryTypeRepair, nil, resource.Bundle{}, "")

	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestAccount_CappedPowerCredit(t *testing.T) {
	account := ledger.NewAccount(bob)
	limit := decimal.NewFromInt(200)
	_, err := account.Credit(at, ledger.EntryTypeAdminCredit, nil, resource.Units(190, 0, 0, 0, 0), "")
	require.NoError(t, err)

	assert.True(t, account.CappedPowerCredit(decimal.NewFromInt(5), limit).Equal(decimal.NewFromInt(5)))
	assert.True(t, account.CappedPowerCredit(decimal.NewFromInt(50), limit).Equal(decimal.NewFromInt(10)))

	_, err = account.Credit(at, ledger.EntryTypeAdminCredit, nil, resource.Units(100, 0, 0, 0, 0), "")
	require.NoError(t, err)
	assert.True(t, account.CappedPowerCredit(decimal.NewFromInt(50), limit).IsZero(), "above limit never credited")
}

func TestNewEntry_Validation(t *testing.T) {
	_, err := ledger.NewEntry(bob, nil, at, ledger.EntryType("BOGUS"), resource.Units(1, 0, 0, 0, 0), resource.Bundle{}, "", nil)
	var invalid *ledger.ErrInvalidEntry
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "entry_type", invalid.Field)

	_, err = ledger.NewEntry(bob, nil, at, ledger.EntryTypeHarvest, resource.Bundle{}, resource.Bundle{}, "", nil)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "delta", invalid.Field)
}

func TestEntryType_Categories(t *testing.T) {
	for _, et := range ledger.AllEntryTypes() {
		category, err := et.ToCategory()
		require.NoError(t, err, et.String())
		assert.True(t, category.IsValid())
	}
	_, err := ledger.ParseEntryType("NOPE")
	assert.Error(t, err)
}
