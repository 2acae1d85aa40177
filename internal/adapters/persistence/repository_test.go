package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/application/game"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/domain/house"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/domain/token"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

var (
	alice = shared.MustNewAddress("alice")
	bob   = shared.MustNewAddress("bob")
	start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func TestHouseRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHouseRepository(db)
	table := settings.Default()

	h, err := house.NewHouse(0, alice, true, start, table)
	require.NoError(t, err)
	require.NoError(t, h.Activate(start))
	require.NoError(t, h.SetName("Lakeside"))
	_, err = h.BuyAddon(1, start, table)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Save(context.Background(), h))
	found, err := repo.FindByID(context.Background(), 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Lakeside", found.Name())
	assert.True(t, found.IsRare())
	assert.True(t, found.IsActivated())
	assert.Equal(t, []settings.AddonID{1}, found.Addons())
	assert.True(t, h.Durability(start, table).Equal(found.Durability(start, table)))
}

func TestHouseRepository_SaveReplacesState(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHouseRepository(db)
	table := settings.Default()
	h, err := house.NewHouse(3, alice, false, start, table)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), h))

	require.NoError(t, h.TransferTo(bob))
	require.NoError(t, repo.Save(context.Background(), h))

	found, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found.Owner().Equals(bob))
	owned, err := repo.FindByOwner(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestHouseRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHouseRepository(db)

	_, err := repo.FindByID(context.Background(), 42)

	var notFound *house.ErrHouseNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, house.ID(42), notFound.ID)
}

func TestHouseRepository_NextIDAndRareCount(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHouseRepository(db)
	table := settings.Default()

	next, err := repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, house.ID(0), next)

	for i, rare := range []bool{true, false, true} {
		h, err := house.NewHouse(house.ID(i), alice, rare, start, table)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), h))
	}

	next, err = repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, house.ID(3), next)
	rare, err := repo.CountRare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rare)

	owned, err := repo.FindByOwner(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, owned, 3)
	assert.Equal(t, house.ID(0), owned[0].ID())
	assert.Equal(t, house.ID(2), owned[2].ID())
}

func TestAccountRepository_LoadsEmptyAccountForNewOwner(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAccountRepository(db)

	account, err := repo.Load(context.Background(), alice)

	require.NoError(t, err)
	assert.True(t, account.Balances().IsZero())
	assert.True(t, account.Owner().Equals(alice))
}

func TestAccountRepository_KeepsFractionalBalances(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormAccountRepository(db)
	account := ledger.NewAccount(alice)
	amount := resource.Bundle{
		decimal.RequireFromString("12.5"),
		decimal.RequireFromString("0.0001"),
		decimal.NewFromInt(3),
		decimal.Zero,
		decimal.RequireFromString("1.25"),
	}
	_, err := account.Credit(start, ledger.EntryTypeAdminCredit, nil, amount, "grant")
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Save(context.Background(), account))
	loaded, err := repo.Load(context.Background(), alice)

	// Assert
	require.NoError(t, err)
	assert.True(t, amount.Equal(loaded.Balances()), loaded.Balances().String())
}

func TestEntryRepository_FiltersAndOrders(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormEntryRepository(db)
	account := ledger.NewAccount(alice)
	houseID := int64(7)

	credit, err := account.Credit(start, ledger.EntryTypeAdminCredit, nil, resource.Units(0, 20, 0, 0, 0), "grant")
	require.NoError(t, err)
	debit, err := account.Debit(start.Add(time.Hour), ledger.EntryTypeUpgrade, &houseID, resource.Units(0, 5, 0, 0, 0), "upgrade")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), credit))
	require.NoError(t, repo.Create(context.Background(), debit))

	// Act
	all, err := repo.FindByOwner(context.Background(), alice, ledger.QueryOptions{})
	require.NoError(t, err)
	upgradeType := ledger.EntryTypeUpgrade
	upgrades, err := repo.FindByOwner(context.Background(), alice, ledger.QueryOptions{EntryType: &upgradeType})
	require.NoError(t, err)
	forHouse, err := repo.CountByOwner(context.Background(), alice, ledger.QueryOptions{HouseID: &houseID})
	require.NoError(t, err)
	other, err := repo.CountByOwner(context.Background(), bob, ledger.QueryOptions{})
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 2)
	assert.Equal(t, ledger.EntryTypeUpgrade, all[0].EntryType(), "newest first by default")
	require.Len(t, upgrades, 1)
	assert.True(t, resource.Units(0, 15, 0, 0, 0).Equal(upgrades[0].BalanceAfter()))
	id, ok := upgrades[0].HouseID()
	assert.True(t, ok)
	assert.Equal(t, houseID, id)
	assert.Equal(t, 1, forHouse)
	assert.Zero(t, other)
}

func TestWalletAndStakeRepositories_RoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	wallets := persistence.NewGormWalletRepository(db)
	stakes := persistence.NewGormStakeRepository(db)

	w, err := wallets.Load(context.Background(), alice)
	require.NoError(t, err)
	require.NoError(t, w.Credit(token.LandToken, decimal.RequireFromString("2.5"), start))
	require.NoError(t, w.Credit(token.AssetToken, decimal.NewFromInt(100), start))
	require.NoError(t, wallets.Save(context.Background(), w))

	p, err := stakes.Find(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, p.IsStaked())
	require.NoError(t, p.Deposit(decimal.NewFromInt(60), start))
	require.NoError(t, stakes.Save(context.Background(), p))

	loadedWallet, err := wallets.Load(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.5").Equal(loadedWallet.Balance(token.LandToken)))
	assert.True(t, decimal.NewFromInt(100).Equal(loadedWallet.Balance(token.AssetToken)))

	loadedStake, err := stakes.Find(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(loadedStake.Amount()))
}

func TestEventRepository_ListAppliesFilter(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormEventRepository(db)
	houseID := int64(1)
	events := []*event.Event{
		event.New(start, alice, nil, event.HouseMinted, map[string]interface{}{"owner": "alice"}),
		event.New(start.Add(time.Hour), alice, &houseID, event.HouseActivated, nil),
		event.New(start.Add(2*time.Hour), bob, &houseID, event.Harvested, map[string]interface{}{"token": "1.5"}),
	}
	require.NoError(t, repo.Append(context.Background(), events))

	// Act
	all, err := repo.List(context.Background(), event.Filter{})
	require.NoError(t, err)
	byHouse, err := repo.List(context.Background(), event.Filter{HouseID: &houseID})
	require.NoError(t, err)
	since := start.Add(90 * time.Minute)
	recent, err := repo.List(context.Background(), event.Filter{Since: &since})
	require.NoError(t, err)
	paged, err := repo.List(context.Background(), event.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 3)
	assert.Equal(t, events[0].ID, all[0].ID)
	assert.Equal(t, "alice", all[0].Data["owner"])
	assert.Len(t, byHouse, 2)
	require.Len(t, recent, 1)
	assert.Equal(t, event.Harvested, recent[0].Type)
	assert.Equal(t, "1.5", recent[0].Data["token"])
	require.Len(t, paged, 1)
	assert.Equal(t, event.HouseActivated, paged[0].Type)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	uow := persistence.NewGormUnitOfWork(db)
	table := settings.Default()
	boom := errors.New("boom")

	// Act
	err := uow.Do(context.Background(), func(ctx context.Context, stores game.Stores) error {
		h, err := house.NewHouse(0, alice, false, start, table)
		if err != nil {
			return err
		}
		if err := stores.Houses.Save(ctx, h); err != nil {
			return err
		}
		return boom
	})

	// Assert
	assert.ErrorIs(t, err, boom)
	_, err = persistence.NewGormHouseRepository(db).FindByID(context.Background(), 0)
	var notFound *house.ErrHouseNotFound
	assert.True(t, errors.As(err, &notFound))
}
