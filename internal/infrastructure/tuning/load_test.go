package tuning_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/domain/resource"
	"github.com/andrescamacho/homestead-go/internal/domain/settings"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/tuning"
)

const shippedTuning = "../../../configs/tuning.yaml"

func TestLoad_EmptyPathUsesBuiltIn(t *testing.T) {
	table, err := tuning.Load("")

	require.NoError(t, err)
	assert.Len(t, table.Addons, 10)
}

// The shipped document and the built-in table must describe the same game
func TestLoad_ShippedDocumentMatchesDefault(t *testing.T) {
	loaded, err := tuning.Load(shippedTuning)
	require.NoError(t, err)
	want := settings.Default()

	for k := 0; k < resource.Count; k++ {
		for lvl := 0; lvl < settings.MaxLevel; lvl++ {
			assert.True(t, want.Facilities[k].Rates[lvl].Equal(loaded.Facilities[k].Rates[lvl]), "rate %d/%d", k, lvl)
			assert.True(t, want.Facilities[k].UpgradeCosts[lvl].Equal(loaded.Facilities[k].UpgradeCosts[lvl]), "upgrade %d/%d", k, lvl)
		}
	}
	for i := range want.PowerLimits {
		assert.True(t, want.PowerLimits[i].Equal(loaded.PowerLimits[i]))
	}
	assert.True(t, want.Multiplier.Rare.Equal(loaded.Multiplier.Rare))

	require.Len(t, loaded.Addons, len(want.Addons))
	for i, a := range want.Addons {
		got := loaded.Addons[i]
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Name, got.Name)
		assert.True(t, a.Cost.Equal(got.Cost), a.Name)
		assert.Equal(t, a.MultiplierPercent, got.MultiplierPercent)
		assert.ElementsMatch(t, a.Requires, got.Requires, a.Name)
		assert.Equal(t, a.RequiresFortification, got.RequiresFortification, a.Name)
		assert.Equal(t, a.Lifetime, got.Lifetime, a.Name)
		assert.Equal(t, a.GatherBonus, got.GatherBonus)
		assert.Equal(t, a.Fertilizable, got.Fertilizable)
	}

	require.Len(t, loaded.Toolsheds, len(want.Toolsheds))
	for i, s := range want.Toolsheds {
		got := loaded.Toolsheds[i]
		assert.Equal(t, s.ID, got.ID)
		assert.True(t, s.Cost.Equal(got.Cost))
		assert.Equal(t, s.GenerationBonusPercent, got.GenerationBonusPercent)
		assert.Equal(t, s.RepairDiscountPercent, got.RepairDiscountPercent)
	}

	assert.True(t, want.Durability.RepairCostPerPoint.Equal(loaded.Durability.RepairCostPerPoint))
	assert.Equal(t, want.Durability.DecayPercent, loaded.Durability.DecayPercent)
	assert.Equal(t, want.Fortification.Window, loaded.Fortification.Window)
	assert.Equal(t, want.Fortification.Decay, loaded.Fortification.Decay)
	for m := range want.Fortification.Costs {
		assert.True(t, want.Fortification.Costs[m].Equal(loaded.Fortification.Costs[m]))
	}
	assert.True(t, resource.Bundle(want.Harvest.SlotPowerCost).Equal(resource.Bundle(loaded.Harvest.SlotPowerCost)))
	assert.True(t, want.Items.ConcreteFoundation.Equal(loaded.Items.ConcreteFoundation))
	assert.Equal(t, 24*time.Hour, loaded.Overdrive.Duration)
	assert.Equal(t, want.SecondsPerYear, loaded.SecondsPerYear)
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	raw, err := os.ReadFile(shippedTuning)
	require.NoError(t, err)

	cases := map[string]string{
		"unknown resource in bundle": strings.Replace(string(raw), "fireplace: {brick: 20}", "fireplace: {gold: 20}", 1),
		"four power limits":          strings.Replace(string(raw), "[200, 220, 230, 240, 250]", "[200, 220, 230, 240]", 1),
		"unknown decay mode":         strings.Replace(string(raw), "decay: step", "decay: cliff", 1),
		"negative amount":            strings.Replace(string(raw), "standard_limit: 100", "standard_limit: -100", 1),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tuning.Parse([]byte(doc))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not match schema")
		})
	}
}

func TestParse_RejectsCyclicAddons(t *testing.T) {
	raw, err := os.ReadFile(shippedTuning)
	require.NoError(t, err)
	doc := strings.Replace(string(raw),
		"{id: 1, name: Landscaping, cost: {lumber: 10, brick: 5}, multiplier_percent: 110}",
		"{id: 1, name: Landscaping, cost: {lumber: 10, brick: 5}, multiplier_percent: 110, requires: [2]}", 1)

	_, err = tuning.Parse([]byte(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tuning")
}

func TestParse_OptionalSectionsKeepBuiltIns(t *testing.T) {
	raw, err := os.ReadFile(shippedTuning)
	require.NoError(t, err)
	doc := string(raw)
	doc = doc[:strings.Index(doc, "fireplace:\n  burn_ratio_percent")]

	table, err := tuning.Parse([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, settings.Default().Minting.RareLimit, table.Minting.RareLimit)
	assert.Equal(t, settings.Default().Gather.DailyLimit, table.Gather.DailyLimit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := tuning.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read tuning file")
}
