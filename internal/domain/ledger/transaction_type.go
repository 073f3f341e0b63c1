package ledger

import "fmt"

// TransactionType is the kind of currency movement
type TransactionType string

const (
	// TransactionTypeRentPayment is the base rent paid when a region is selected
	TransactionTypeRentPayment TransactionType = "RENT_PAYMENT"

	// TransactionTypeStockPurchase is the cost of the round's inventory
	TransactionTypeStockPurchase TransactionType = "STOCK_PURCHASE"

	// TransactionTypeSalesRevenue is revenue of one sales pass
	TransactionTypeSalesRevenue TransactionType = "SALES_REVENUE"

	// TransactionTypeEventEffect is the direct currency effect of an event option (either sign)
	TransactionTypeEventEffect TransactionType = "EVENT_EFFECT"
)

func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeRentPayment,
		TransactionTypeStockPurchase,
		TransactionTypeSalesRevenue,
		TransactionTypeEventEffect,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
