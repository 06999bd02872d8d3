package domain

import "time"

// Category field length bounds.
const (
	CategoryTitleMaxLen = 30
	CategorySlugMinLen  = 5
	CategorySlugMaxLen  = 30
)

// Category represents a catalog category. Image holds the stored file name
// only; URL assembly happens at the presentation layer. Slug is stored
// lower-cased.
type Category struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Image        *string   `json:"image,omitempty"`
	ShowInBottom bool      `json:"show_in_bottom"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryProductCount pairs a category id with the number of products
// assigned to it. Categories without products report zero.
type CategoryProductCount struct {
	ProductsCount int    `json:"products_count"`
	ID            string `json:"id"`
}
