package repository

import (
	"context"

	"github.com/utafrali/catalog-admin/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	CategoryID *string
	Page       int
	PerPage    int
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category into the store.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetByTitle retrieves a category by its exact title.
	GetByTitle(ctx context.Context, title string) (*domain.Category, error)

	// GetBySlug retrieves a category by its slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// Update modifies an existing category in the store.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category. It fails with a conflict while products
	// still reference the category.
	Delete(ctx context.Context, id string) error

	// ListAll returns all categories ordered by creation time.
	ListAll(ctx context.Context) ([]domain.Category, error)

	// ProductCounts returns the number of products per category, including
	// zero counts for empty categories.
	ProductCounts(ctx context.Context) ([]domain.CategoryProductCount, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its identifier, joined with its
	// category title.
	GetByID(ctx context.Context, id string) (*domain.ProductWithCategory, error)

	// List returns products matching the given filter along with the total
	// count, ordered by creation time.
	List(ctx context.Context, filter ProductFilter) ([]domain.ProductWithCategory, int, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// OrderRepository exposes the one view of the ordering subsystem this service
// needs: whether any order references a product.
type OrderRepository interface {
	ExistsByProductID(ctx context.Context, productID string) (bool, error)
}
