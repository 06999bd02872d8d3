package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/pkg/database"
	apperrors "github.com/utafrali/catalog-admin/pkg/errors"
)

// categoryColumns is the standard SELECT column list for categories.
const categoryColumns = "id, title, slug, image, show_in_bottom, created_at, updated_at"

// CategoryRepository implements category persistence operations using PostgreSQL.
type CategoryRepository struct {
	pool database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool database.DBTX) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category into the database.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, title, slug, image, show_in_bottom, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Slug,
		c.Image,
		c.ShowInBottom,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return categoryConflict(err)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)
	return r.scanCategory(ctx, query, id)
}

// GetByTitle retrieves a category by its exact title.
func (r *CategoryRepository) GetByTitle(ctx context.Context, title string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE title = $1`, categoryColumns)
	return r.scanCategory(ctx, query, title)
}

// GetBySlug retrieves a category by its slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE slug = $1`, categoryColumns)
	return r.scanCategory(ctx, query, slug)
}

// Update modifies an existing category in the database.
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE categories
		SET title = $1, slug = $2, image = $3, show_in_bottom = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query,
		c.Title,
		c.Slug,
		c.Image,
		c.ShowInBottom,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return categoryConflict(err)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID)
	}

	return nil
}

// Delete removes a category by its ID. The products.category_id foreign key
// restricts deletion while products still reference the category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Conflict("Category can not be deleted")
		}
		return fmt.Errorf("delete category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", id)
	}

	return nil
}

// ListAll returns all categories ordered by creation time.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories ORDER BY created_at ASC`, categoryColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Slug,
			&c.Image,
			&c.ShowInBottom,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

// ProductCounts returns the product count for every category, zero included.
func (r *CategoryRepository) ProductCounts(ctx context.Context) ([]domain.CategoryProductCount, error) {
	query := `
		SELECT count(p.id) AS products_count, c.id
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.created_at
		ORDER BY c.created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count category products: %w", err)
	}
	defer rows.Close()

	var counts []domain.CategoryProductCount
	for rows.Next() {
		var c domain.CategoryProductCount
		if err := rows.Scan(&c.ProductsCount, &c.ID); err != nil {
			return nil, fmt.Errorf("scan product count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product count rows: %w", err)
	}

	if counts == nil {
		counts = []domain.CategoryProductCount{}
	}

	return counts, nil
}

// scanCategory is a helper that executes a query expected to return a single category row.
func (r *CategoryRepository) scanCategory(ctx context.Context, query string, args ...any) (*domain.Category, error) {
	var c domain.Category

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Title,
		&c.Slug,
		&c.Image,
		&c.ShowInBottom,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	return &c, nil
}

// categoryConflict maps a unique violation to a field-tagged conflict using
// the constraint name embedded in the error text.
func categoryConflict(err error) error {
	if strings.Contains(err.Error(), "categories_slug_key") {
		return apperrors.AlreadyExists("Category", "slug")
	}
	return apperrors.AlreadyExists("Category", "title")
}
