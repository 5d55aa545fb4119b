package domain

import "strings"

// Category is a named grouping tag applicable to zero or more items
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryCount is the number of items linked to a category
type CategoryCount struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Items      int    `json:"items"`
}

// ValidateCategoryName rejects empty (or whitespace-only) names
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationErrorf("category name is required")
	}
	return nil
}
