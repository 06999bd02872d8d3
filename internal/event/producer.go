package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/catalog-admin/internal/domain"
	pkgkafka "github.com/utafrali/catalog-admin/pkg/kafka"
)

// Kafka topics for catalog domain events.
var (
	TopicCategoryCreated = pkgkafka.Topic("category", "created")
	TopicCategoryUpdated = pkgkafka.Topic("category", "updated")
	TopicCategoryDeleted = pkgkafka.Topic("category", "deleted")
	TopicProductCreated  = pkgkafka.Topic("product", "created")
	TopicProductUpdated  = pkgkafka.Topic("product", "updated")
	TopicProductDeleted  = pkgkafka.Topic("product", "deleted")
)

// Aggregate type constants.
const (
	AggregateTypeCategory = "category"
	AggregateTypeProduct  = "product"
)

// Source identifier for events originating from this service.
const SourceCatalogAdmin = "catalog-admin"

// CategoryEventData is the payload for category created/updated events.
type CategoryEventData struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Image        *string `json:"image,omitempty"`
	ShowInBottom bool    `json:"show_in_bottom"`
}

// ProductEventData is the payload for product created/updated events.
type ProductEventData struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	CategoryID    string   `json:"category_id"`
	Images        []string `json:"images,omitempty"`
	VideoURL      *string  `json:"video_url,omitempty"`
	ShowOnWebsite bool     `json:"show_on_website"`
}

// DeletedEventData is the payload for deleted events.
type DeletedEventData struct {
	ID string `json:"id"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func categoryData(c *domain.Category) CategoryEventData {
	return CategoryEventData{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Image:        c.Image,
		ShowInBottom: c.ShowInBottom,
	}
}

func productData(p *domain.Product) ProductEventData {
	return ProductEventData{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         p.Price,
		CategoryID:    p.CategoryID,
		Images:        p.Images,
		VideoURL:      p.VideoURL,
		ShowOnWebsite: p.ShowOnWebsite,
	}
}

// PublishCategoryCreated publishes a category.created event.
func (p *Producer) PublishCategoryCreated(ctx context.Context, category *domain.Category) error {
	return p.publish(ctx, TopicCategoryCreated, category.ID, AggregateTypeCategory, categoryData(category))
}

// PublishCategoryUpdated publishes a category.updated event.
func (p *Producer) PublishCategoryUpdated(ctx context.Context, category *domain.Category) error {
	return p.publish(ctx, TopicCategoryUpdated, category.ID, AggregateTypeCategory, categoryData(category))
}

// PublishCategoryDeleted publishes a category.deleted event.
func (p *Producer) PublishCategoryDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicCategoryDeleted, id, AggregateTypeCategory, DeletedEventData{ID: id})
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, DeletedEventData{ID: id})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceCatalogAdmin, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
