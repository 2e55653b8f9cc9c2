package model

// CategoryName is a spending category name.
type CategoryName string

const (
	CategoryFood          CategoryName = "Food"
	CategoryShopping      CategoryName = "Shopping"
	CategoryTransport     CategoryName = "Transport"
	CategoryBills         CategoryName = "Bills"
	CategoryEntertainment CategoryName = "Entertainment"
	CategoryHealth        CategoryName = "Health"
	// CategoryOthers is the reserved fallback. Ingestion maps every draft
	// to an existing category or to this one; it never creates categories.
	CategoryOthers CategoryName = "Others"
)

// Category is a row in the categories table.
type Category struct {
	ID    int64
	Name  CategoryName
	Color string
	Icon  string
}

// DefaultCategories returns the categories seeded on first open.
func DefaultCategories() []Category {
	return []Category{
		{Name: CategoryFood, Color: "#FF6B6B", Icon: "food"},
		{Name: CategoryShopping, Color: "#4ECDC4", Icon: "shopping"},
		{Name: CategoryTransport, Color: "#45B7D1", Icon: "car"},
		{Name: CategoryBills, Color: "#96CEB4", Icon: "file-document"},
		{Name: CategoryEntertainment, Color: "#FFEEAD", Icon: "movie"},
		{Name: CategoryHealth, Color: "#D4A5A5", Icon: "hospital"},
		{Name: CategoryOthers, Color: "#9B59B6", Icon: "dots-horizontal"},
	}
}
