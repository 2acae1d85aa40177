package ledger

import "fmt"

// Category groups entry types for reporting
type Category string

const (
	// CategoryProduction is resource income from houses
	CategoryProduction Category = "PRODUCTION"

	// CategoryInvestment is spending on (and refunds from) house improvements
	CategoryInvestment Category = "INVESTMENT"

	// CategoryMaintenance is spending that keeps durability and harvests going
	CategoryMaintenance Category = "MAINTENANCE"

	// CategoryConversion is trading one resource (or land token) for another
	CategoryConversion Category = "CONVERSION"

	// CategoryAdmin is direct credits by the game administrator
	CategoryAdmin Category = "ADMIN"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryProduction,
		CategoryInvestment,
		CategoryMaintenance,
		CategoryConversion,
		CategoryAdmin,
	}
}

// TypeToCategoryMap maps entry types to their categories
var TypeToCategoryMap = map[EntryType]Category{
	EntryTypeAutoHarvest:   CategoryProduction,
	EntryTypeHarvest:       CategoryProduction,
	EntryTypeHarvestFee:    CategoryMaintenance,
	EntryTypeUpgrade:       CategoryInvestment,
	EntryTypeAddonPurchase: CategoryInvestment,
	EntryTypeAddonRefund:   CategoryInvestment,
	EntryTypeToolshed:      CategoryInvestment,
	EntryTypeItemPurchase:  CategoryInvestment,
	EntryTypeRepair:        CategoryMaintenance,
	EntryTypeFortify:       CategoryMaintenance,
	EntryTypeBurnLumber:    CategoryConversion,
	EntryTypeFirepitLoad:   CategoryConversion,
	EntryTypeGatherLumber:  CategoryConversion,
	EntryTypePowerPurchase: CategoryConversion,
	EntryTypeAdminCredit:   CategoryAdmin,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryProduction,
		CategoryInvestment,
		CategoryMaintenance,
		CategoryConversion,
		CategoryAdmin:
		return true
	default:
		return false
	}
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
