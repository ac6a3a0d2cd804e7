package domain

import "time"

type Product struct {
	ID            uint
	Name          string
	Description   string
	Price         float64
	Condition     string
	CategoryID    uint
	CategoryName  string
	StockQuantity int
	Images        []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

func ValidCondition(condition string) bool {
	return condition == ConditionNew || condition == ConditionUsed
}

// InStock reports whether the product can still be added to a cart. An
// inactive product is never in stock for the storefront, but it remains
// referenceable by historical order items.
func (p Product) InStock() bool {
	return p.IsActive && p.StockQuantity > 0
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID uint
	Condition  string
	Search     string
}

type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
