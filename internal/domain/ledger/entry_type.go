package ledger

import "fmt"

// EntryType names the game action that moved resources
type EntryType string

const (
	// EntryTypeAutoHarvest is power credited by settlement
	EntryTypeAutoHarvest EntryType = "AUTO_HARVEST"
	// EntryTypeHarvest is pending production claimed by a harvest
	EntryTypeHarvest EntryType = "HARVEST"
	// EntryTypeHarvestFee is the power charged by a harvest
	EntryTypeHarvestFee EntryType = "HARVEST_FEE"

	EntryTypeUpgrade       EntryType = "UPGRADE_FACILITY"
	EntryTypeAddonPurchase EntryType = "BUY_ADDON"
	EntryTypeAddonRefund   EntryType = "SALVAGE_ADDON"
	EntryTypeToolshed      EntryType = "TOOLSHED"
	// EntryTypeItemPurchase covers fireplace, harvester, foundation, overdrive and fertilizer
	EntryTypeItemPurchase EntryType = "BUY_ITEM"

	EntryTypeRepair  EntryType = "REPAIR"
	EntryTypeFortify EntryType = "FORTIFY"

	EntryTypeBurnLumber    EntryType = "BURN_LUMBER"
	EntryTypeFirepitLoad   EntryType = "FRONT_LOAD_FIREPIT"
	EntryTypeGatherLumber  EntryType = "GATHER_LUMBER"
	EntryTypePowerPurchase EntryType = "BUY_POWER"

	EntryTypeAdminCredit EntryType = "ADMIN_CREDIT"
)

// AllEntryTypes returns all valid entry types
func AllEntryTypes() []EntryType {
	return []EntryType{
		EntryTypeAutoHarvest,
		EntryTypeHarvest,
		EntryTypeHarvestFee,
		EntryTypeUpgrade,
		EntryTypeAddonPurchase,
		EntryTypeAddonRefund,
		EntryTypeToolshed,
		EntryTypeItemPurchase,
		EntryTypeRepair,
		EntryTypeFortify,
		EntryTypeBurnLumber,
		EntryTypeFirepitLoad,
		EntryTypeGatherLumber,
		EntryTypePowerPurchase,
		EntryTypeAdminCredit,
	}
}

func (t EntryType) String() string {
	return string(t)
}

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the entry type to its category
func (t EntryType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown entry type: %s", t)
	}
	return category, nil
}

// ParseEntryType parses a string into an EntryType
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entry type: %s", s)
	}
	return t, nil
}
