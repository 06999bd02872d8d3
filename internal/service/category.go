package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/internal/event"
	"github.com/utafrali/catalog-admin/internal/repository"
	"github.com/utafrali/catalog-admin/internal/storage"
	apperrors "github.com/utafrali/catalog-admin/pkg/errors"
)

// categoryCacheKey holds the cached category list; invalidated on every write.
const categoryCacheKey = "catalog:categories"

// categoryCacheTTL bounds staleness if an invalidation is ever missed.
const categoryCacheTTL = time.Hour

// CategoryService implements the business logic for category operations.
type CategoryService struct {
	repo     repository.CategoryRepository
	storage  storage.Storage
	cache    *redis.Client
	producer *event.Producer
	logger   *slog.Logger
	imageDir string
}

// NewCategoryService creates a new category service. cache may be nil, in
// which case list reads always hit the repository. imageDir is the storage
// directory for category images and must end with a slash.
func NewCategoryService(
	repo repository.CategoryRepository,
	store storage.Storage,
	cache *redis.Client,
	producer *event.Producer,
	logger *slog.Logger,
	imageDir string,
) *CategoryService {
	return &CategoryService{
		repo:     repo,
		storage:  store,
		cache:    cache,
		producer: producer,
		logger:   logger,
		imageDir: imageDir,
	}
}

// CategoryInput holds the parameters for creating or updating a category.
// All scalar fields are required; Image is optional.
type CategoryInput struct {
	Title        string
	Slug         string
	ShowInBottom bool
	Image        *domain.ImageUpload
}

// CreateCategory creates a new category, storing its image first so a failed
// insert can clean the file up again.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*domain.Category, error) {
	slug := strings.ToLower(input.Slug)

	if err := s.checkUnique(ctx, input.Title, slug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Slug:         slug,
		ShowInBottom: input.ShowInBottom,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var uploadedKey string
	if input.Image != nil {
		name, key, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		category.Image = &name
		uploadedKey = key
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.cleanupUpload(ctx, uploadedKey)
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.invalidateCache(ctx)

	if err := s.producer.PublishCategoryCreated(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.created event",
			slog.String("category_id", category.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// GetCategory retrieves a category by its ID.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories, serving from the cache when it is
// warm. Cache failures fall through to the repository.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
		if err == nil {
			var categories []domain.Category
			if jsonErr := json.Unmarshal(data, &categories); jsonErr == nil {
				return categories, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "category cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "category cache write failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return categories, nil
}

// ProductCounts returns the number of products per category.
func (s *CategoryService) ProductCounts(ctx context.Context) ([]domain.CategoryProductCount, error) {
	counts, err := s.repo.ProductCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("category product counts: %w", err)
	}
	return counts, nil
}

// UpdateCategory updates a category. A replacement image is uploaded before
// the record is persisted; the old file is removed only after the update
// succeeds, and the new file is removed if it fails.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input *CategoryInput) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	slug := strings.ToLower(input.Slug)

	if err := s.checkUnique(ctx, input.Title, slug, id); err != nil {
		return nil, err
	}

	oldImage := category.Image

	var uploadedKey string
	if input.Image != nil {
		name, key, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		category.Image = &name
		uploadedKey = key
	}

	category.Title = input.Title
	category.Slug = slug
	category.ShowInBottom = input.ShowInBottom

	if err := s.repo.Update(ctx, category); err != nil {
		s.cleanupUpload(ctx, uploadedKey)
		return nil, fmt.Errorf("update category: %w", err)
	}

	if uploadedKey != "" && oldImage != nil {
		if err := s.storage.Delete(ctx, s.imageDir+*oldImage); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete replaced category image",
				slog.String("category_id", id),
				slog.String("image", *oldImage),
				slog.String("error", err.Error()),
			)
		}
	}

	s.invalidateCache(ctx)

	if err := s.producer.PublishCategoryUpdated(ctx, category); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.updated event",
			slog.String("category_id", category.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID),
	)

	return category, nil
}

// DeleteCategory removes a category record, then its image file. The record
// goes first so a delete rejected by referencing products leaves the file in
// place.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if category.Image != nil {
		if err := s.storage.Delete(ctx, s.imageDir+*category.Image); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete category image",
				slog.String("category_id", id),
				slog.String("image", *category.Image),
				slog.String("error", err.Error()),
			)
		}
	}

	s.invalidateCache(ctx)

	if err := s.producer.PublishCategoryDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish category.deleted event",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
	)

	return nil
}

// checkUnique rejects a title or slug already taken by another category.
// The database carries unique constraints as the authoritative guard; this
// fast path produces the same field-tagged conflict without burning an insert.
func (s *CategoryService) checkUnique(ctx context.Context, title, slug, excludeID string) error {
	existing, err := s.repo.GetByTitle(ctx, title)
	if err == nil && existing.ID != excludeID {
		return apperrors.AlreadyExists("Category", "title")
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check title uniqueness: %w", err)
	}

	existing, err = s.repo.GetBySlug(ctx, slug)
	if err == nil && existing.ID != excludeID {
		return apperrors.AlreadyExists("Category", "slug")
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check slug uniqueness: %w", err)
	}

	return nil
}

func (s *CategoryService) uploadImage(ctx context.Context, upload *domain.ImageUpload) (name, key string, err error) {
	name = categoryImageName(upload)
	key = s.imageDir + name

	_, err = s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: imageContentType(upload),
		Size:        upload.Size,
		Data:        upload.Data,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload category image: %w", err)
	}

	return name, key, nil
}

// cleanupUpload removes a freshly uploaded file after a failed persist.
func (s *CategoryService) cleanupUpload(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "failed to clean up storage after db error",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryCacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "category cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
