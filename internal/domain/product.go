package domain

import "time"

// Product field bounds.
const (
	ProductTitleMaxLen       = 50
	ProductDescriptionMinLen = 10
	ProductDescriptionMaxLen = 500
	ProductImagesMaxCount    = 3
)

// Product represents a catalog product. Images holds stored file names in
// display order, at most ProductImagesMaxCount of them. Price is a whole
// positive amount in the store currency.
type Product struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	CategoryID    string    `json:"category_id"`
	Images        []string  `json:"images,omitempty"`
	VideoURL      *string   `json:"video_url,omitempty"`
	ShowOnWebsite bool      `json:"show_on_website"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductWithCategory is the read model for product listings and single
// reads, joining in the owning category's title.
type ProductWithCategory struct {
	Product
	CategoryTitle string `json:"category_title"`
}
