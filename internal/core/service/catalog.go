package service

import (
	"context"
	"fmt"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.CatalogService = (*CatalogService)(nil)

// A CatalogService orchestrates product CRUD and emits a product event
// for every successful mutation. Event dispatch is fire-and-forget:
// its outcome never affects the mutation result.
type CatalogService struct {
	products port.ProductsStorage
	notifier port.EventNotifier
}

func NewCatalog(
	products port.ProductsStorage, notifier port.EventNotifier,
) CatalogService {
	return CatalogService{products, notifier}
}

func (s CatalogService) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s CatalogService) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogService.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) CreateProduct(
	ctx context.Context, p domain.Product, actor domain.Actor,
) (domain.Product, error) {
	const op = "CatalogService.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.products.StoreProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(created, domain.EventCreated, actor)
	return created, nil
}

func (s CatalogService) UpdateProduct(
	ctx context.Context, id string, p domain.Product, actor domain.Actor,
) (domain.Product, error) {
	const op = "CatalogService.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.products.ReplaceProduct(ctx, id, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(updated, domain.EventUpdated, actor)
	return updated, nil
}

func (s CatalogService) DeleteProduct(
	ctx context.Context, id string, actor domain.Actor,
) (domain.Product, error) {
	const op = "CatalogService.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := s.products.RemoveProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(deleted, domain.EventDeleted, actor)
	return deleted, nil
}

func (s CatalogService) notify(
	p domain.Product, t domain.EventType, actor domain.Actor,
) {
	s.notifier.Notify(domain.ProductEvent{
		ProductID:    p.ID,
		ProductCode:  p.Code,
		ProductPrice: p.Price,
		Email:        actor.Email,
		RequestID:    actor.RequestID,
		Type:         t,
	})
}
