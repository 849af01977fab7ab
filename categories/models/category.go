package models

// Category is one of the fixed classification targets. Rows are seeded by
// migration; the service never creates or removes them.
type Category struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
	Icon  string `json:"icon" db:"icon"`
}

// CategoriesResponse wraps the category listing.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}
