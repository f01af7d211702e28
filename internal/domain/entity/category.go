// Package entity defines the core business entities for the domain layer.
package entity

// Category represents a named grouping of transactions, scoped to one type.
// Name is unique within its type.
type Category struct {
	ID   int64
	Name string
	Type TransactionType
}

// CategoryInput holds the fields needed to create a category.
type CategoryInput struct {
	Name string
	Type TransactionType
}

// FindCategory returns the category with the given name and type, if present.
func FindCategory(categories []Category, name string, t TransactionType) (Category, bool) {
	for _, c := range categories {
		if c.Name == name && c.Type == t {
			return c, true
		}
	}
	return Category{}, false
}

// CategoriesOfType returns the categories whose type matches t, preserving order.
func CategoriesOfType(categories []Category, t TransactionType) []Category {
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}
