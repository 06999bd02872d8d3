package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/internal/event"
	"github.com/utafrali/catalog-admin/internal/repository"
	"github.com/utafrali/catalog-admin/internal/storage"
	apperrors "github.com/utafrali/catalog-admin/pkg/errors"
	"github.com/utafrali/catalog-admin/pkg/validator"
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	storage    storage.Storage
	producer   *event.Producer
	logger     *slog.Logger
	imageDir   string
}

// NewProductService creates a new product service. imageDir is the storage
// directory for product images and must end with a slash.
func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	orders repository.OrderRepository,
	store storage.Storage,
	producer *event.Producer,
	logger *slog.Logger,
	imageDir string,
) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		orders:     orders,
		storage:    store,
		producer:   producer,
		logger:     logger,
		imageDir:   imageDir,
	}
}

// CreateProductInput holds the parameters for creating a product. The
// handler guarantees at least one of Images and VideoURL is present.
type CreateProductInput struct {
	Title         string
	Description   string
	Price         int64
	CategoryID    string
	ShowOnWebsite bool
	VideoURL      *string
	Images        []*domain.ImageUpload
}

// UpdateProductInput holds the parameters for a partial product update.
// Nil fields were absent from the request. ExistingImages lists the stored
// file names the client wants to keep; nil means the field was absent.
type UpdateProductInput struct {
	Title          *string
	Description    *string
	Price          *int64
	CategoryID     *string
	ShowOnWebsite  *bool
	VideoURL       *string
	ExistingImages []string
	NewImages      []*domain.ImageUpload
}

// CreateProduct uploads the product images and creates the record, removing
// the files again if the insert fails.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if err := s.ensureCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	names, keys, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		CategoryID:    input.CategoryID,
		Images:        names,
		VideoURL:      input.VideoURL,
		ShowOnWebsite: input.ShowOnWebsite,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.deleteFiles(ctx, keys)
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("category_id", product.CategoryID),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID, including its category title.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.ProductWithCategory, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns one page of products plus the total count.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.ProductWithCategory, int, error) {
	if filter.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *filter.CategoryID); err != nil {
			return nil, 0, err
		}
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct applies a partial update. Scalar fields change only when
// present and different, except the video URL which is set whenever present.
// The stored image list is reconciled against the retained names: new uploads
// are appended after them, dropped names have their files deleted, and new
// uploads arriving with zero retained names leave the list untouched.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	product := &existing.Product

	if input.Title != nil && *input.Title != product.Title {
		product.Title = *input.Title
	}
	if input.Description != nil && *input.Description != product.Description {
		product.Description = *input.Description
	}
	if input.Price != nil && *input.Price != product.Price {
		product.Price = *input.Price
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.VideoURL != nil {
		product.VideoURL = input.VideoURL
	}

	var newKeys []string
	retained := input.ExistingImages

	switch {
	case len(input.NewImages) > 0 && len(retained) > 0:
		if len(retained)+len(input.NewImages) > domain.ProductImagesMaxCount {
			return nil, apperrors.InvalidInput(domain.MsgProductImageCap)
		}
		names, keys, err := s.uploadImages(ctx, input.NewImages)
		if err != nil {
			return nil, err
		}
		newKeys = keys
		product.Images = append(append([]string{}, retained...), names...)
	case len(retained) > 0:
		for _, name := range product.Images {
			if !containsString(retained, name) {
				if err := s.storage.Delete(ctx, s.imageDir+name); err != nil {
					s.logger.ErrorContext(ctx, "failed to delete dropped product image",
						slog.String("product_id", id),
						slog.String("image", name),
						slog.String("error", err.Error()),
					)
				}
			}
		}
		product.Images = retained
	}

	if input.ShowOnWebsite != nil {
		product.ShowOnWebsite = *input.ShowOnWebsite
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.deleteFiles(ctx, newKeys)
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// DeleteProduct removes a product, its image files first. Products that have
// been ordered can not be deleted.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	ordered, err := s.orders.ExistsByProductID(ctx, id)
	if err != nil {
		return fmt.Errorf("check product orders: %w", err)
	}
	if ordered {
		return apperrors.InvalidInput("Product can not be deleted")
	}

	for _, name := range product.Images {
		if err := s.storage.Delete(ctx, s.imageDir+name); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete product image",
				slog.String("product_id", id),
				slog.String("image", name),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

// CanDeleteProduct reports whether the product exists and has never been
// ordered.
func (s *ProductService) CanDeleteProduct(ctx context.Context, id string) (bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return false, fmt.Errorf("get product: %w", err)
	}

	ordered, err := s.orders.ExistsByProductID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check product orders: %w", err)
	}

	return !ordered, nil
}

// ensureCategoryExists rejects category ids that do not resolve, as a
// field-level validation failure.
func (s *ProductService) ensureCategoryExists(ctx context.Context, categoryID string) error {
	_, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return validator.NewFieldError("category_id", "The selected category id is invalid.")
		}
		return fmt.Errorf("check category exists: %w", err)
	}
	return nil
}

// uploadImages stores each upload, removing the ones already written when a
// later one fails.
func (s *ProductService) uploadImages(ctx context.Context, uploads []*domain.ImageUpload) (names, keys []string, err error) {
	for _, upload := range uploads {
		name := productImageName(upload)
		key := s.imageDir + name

		if _, err := s.storage.Upload(ctx, &storage.UploadInput{
			Key:         key,
			ContentType: imageContentType(upload),
			Size:        upload.Size,
			Data:        upload.Data,
		}); err != nil {
			s.deleteFiles(ctx, keys)
			return nil, nil, fmt.Errorf("upload product image: %w", err)
		}

		names = append(names, name)
		keys = append(keys, key)
	}

	return names, keys, nil
}

// deleteFiles removes uploaded files after a failed persist.
func (s *ProductService) deleteFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.ErrorContext(ctx, "failed to clean up storage after db error",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}
