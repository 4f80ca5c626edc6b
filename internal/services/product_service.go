package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/logging"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrProductNotFound is returned when the targeted product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product lifecycle routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductEvent is the body published after a successful write.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  string          `json:"product_id"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validate  *validator.Validate
	publisher EventPublisher
	exchange  string
}

// NewProductService creates a new ProductService. publisher may be nil, in which
// case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, exchange string) *ProductService {
	return &ProductService{
		repo:      repo,
		validate:  newValidator(),
		publisher: publisher,
		exchange:  exchange,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

// CreateProduct validates input, assigns a fresh ID and persists the product.
func (s *ProductService) CreateProduct(ctx context.Context, input models.CreateProductInput) (*models.Product, error) {
	if _, err := validateProduct(s.validate, strictMode, productFields{
		Name:        &input.Name,
		Description: &input.Description,
		Price:       &input.Price,
	}); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       copyImage(input.Image),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct applies a partial update. Fields absent from input keep their
// stored value; blank name/description values are ignored. A present image
// always overwrites, null clears it.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	fields, err := validateProduct(s.validate, patchMode, productFields{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
	if err != nil {
		return nil, err
	}

	if fields.Name == nil && fields.Description == nil && fields.Price == nil && !input.Image.Set {
		return product, nil
	}

	if fields.Name != nil {
		product.Name = *fields.Name
	}
	if fields.Description != nil {
		product.Description = *fields.Description
	}
	if fields.Price != nil {
		product.Price = *fields.Price
	}
	if input.Image.Set {
		product.Image = copyImage(input.Image.Value)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, translate(err)
	}

	s.publish(ctx, EventProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct permanently deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

// publish never fails the caller; delivery problems are only logged.
func (s *ProductService) publish(ctx context.Context, eventType, id string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	l := logging.FromContext(ctx)

	body, err := json.Marshal(ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		l.Warn("marshal product event", "event", eventType, "product_id", id, "error", err)
		return
	}
	if err := s.publisher.Publish(s.exchange, eventType, body); err != nil {
		l.Warn("publish product event", "event", eventType, "product_id", id, "error", err)
	}
}

func translate(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrProductNotFound, err)
	}
	return err
}

// copyImage stores the image exactly as sent; only a null image is NULL.
func copyImage(image *string) *string {
	if image == nil {
		return nil
	}
	v := *image
	return &v
}
