package settings_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, settings.Default().Validate())
}

func TestValidate_RejectsAddonCycle(t *testing.T) {
	// Arrange
	table := settings.Default()
	landscaping, err := table.Addon(1)
	require.NoError(t, err)
	landscaping.Requires = []settings.AddonID{2}

	// Act
	err = table.Validate()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidate_RejectsUnknownPrerequisite(t *testing.T) {
	table := settings.Default()
	table.Addons[0].Requires = []settings.AddonID{42}

	err := table.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown addon")
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	table := settings.Default()
	table.Durability.DecayPercent = 150
	table.SalvageRefundPercent = -1
	table.PowerLimits[4] = decimal.NewFromInt(1)

	err := table.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decay")
	assert.Contains(t, err.Error(), "salvage")
	assert.Contains(t, err.Error(), "power limit")
}

func TestTransitiveDependents(t *testing.T) {
	table := settings.Default()

	tests := []struct {
		id       settings.AddonID
		expected []settings.AddonID
	}{
		{id: 1, expected: []settings.AddonID{2}},
		{id: 4, expected: []settings.AddonID{8, 10}},
		{id: 5, expected: []settings.AddonID{6, 10}},
		{id: 3, expected: []settings.AddonID{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, table.TransitiveDependents(tt.id), "addon %d", tt.id)
	}
}

func TestTransitiveDependents_FollowsChains(t *testing.T) {
	table := settings.Default()
	table.Addons = append(table.Addons, settings.AddonSpec{ID: 11, Name: "Wine Cellar", MultiplierPercent: 105, Requires: []settings.AddonID{10}})

	assert.Equal(t, []settings.AddonID{8, 10, 11}, table.TransitiveDependents(4))
}

func TestUpgradeCost_Bounds(t *testing.T) {
	table := settings.Default()

	_, err := table.UpgradeCost(resource.Lumber, 1)
	assert.True(t, shared.IsKind(err, shared.KindBounds))
	_, err = table.UpgradeCost(resource.Lumber, 6)
	assert.True(t, shared.IsKind(err, shared.KindBounds))
	_, err = table.UpgradeCost(resource.Kind(9), 2)
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))

	cost, err := table.UpgradeCost(resource.Lumber, 2)
	require.NoError(t, err)
	assert.False(t, cost.IsZero())
}

func TestLookups(t *testing.T) {
	table := settings.Default()

	assert.True(t, table.PowerLimit(0).Equal(decimal.NewFromInt(200)))
	assert.True(t, table.PowerLimit(5).Equal(decimal.NewFromInt(250)))
	assert.True(t, table.GenerationRate(resource.Power, 3).Equal(decimal.NewFromInt(12)))
	assert.Equal(t, int64(5), table.DecayPercent(true))
	assert.Equal(t, int64(10), table.DecayPercent(false))

	_, err := table.Toolshed(6)
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))
	_, err = table.FortificationCost(settings.Material(3))
	assert.True(t, shared.IsKind(err, shared.KindInvalidArgument))
}
