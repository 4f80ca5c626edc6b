// Package shell holds the client-side browsing session used by catalogctl:
// the last fetched product list, the query view over it, and the edit calls
// that refresh it.
package shell

import (
	"context"
	"fmt"

	"catalog/internal/models"
	"catalog/pkg/query"
)

// API is the subset of the catalog HTTP API a session needs. *client.Client satisfies it.
type API interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input models.CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Session struct {
	api  API
	view *query.View
}

// NewSession starts with an empty list; call Reload to fetch.
func NewSession(api API, pageSize int) *Session {
	view := query.NewView()
	view.SetPageSize(pageSize)
	return &Session{api: api, view: view}
}

func (s *Session) View() *query.View {
	return s.view
}

// Result is the current page of the view.
func (s *Session) Result() query.Result {
	return s.view.Result()
}

// Reload fetches the full list. On failure the previously loaded items stay in
// the view and the error is returned for display.
func (s *Session) Reload(ctx context.Context) error {
	items, err := s.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	s.view.SetItems(items)
	return nil
}

func (s *Session) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Create adds a product and reloads the list. A failed reload after a
// successful create returns both the product and the reload error.
func (s *Session) Create(ctx context.Context, input models.CreateProductInput) (*models.Product, error) {
	p, err := s.api.CreateProduct(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, s.Reload(ctx)
}

func (s *Session) Update(ctx context.Context, id string, input models.UpdateProductInput) (*models.Product, error) {
	p, err := s.api.UpdateProduct(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, s.Reload(ctx)
}

func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return s.Reload(ctx)
}
