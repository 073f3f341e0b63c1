package ledger

import "fmt"

// Category groups transactions for the profit & loss statement
type Category string

const (
	CategoryRent           Category = "RENT"
	CategoryInventoryCosts Category = "INVENTORY_COSTS"
	CategorySalesRevenue   Category = "SALES_REVENUE"
	CategoryEventEffects   Category = "EVENT_EFFECTS"
)

func AllCategories() []Category {
	return []Category{
		CategoryRent,
		CategoryInventoryCosts,
		CategorySalesRevenue,
		CategoryEventEffects,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeRentPayment:   CategoryRent,
	TransactionTypeStockPurchase: CategoryInventoryCosts,
	TransactionTypeSalesRevenue:  CategorySalesRevenue,
	TransactionTypeEventEffect:   CategoryEventEffects,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryRent, CategoryInventoryCosts, CategorySalesRevenue, CategoryEventEffects:
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
