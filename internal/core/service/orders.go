package service

import (
	"context"
	"fmt"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.OrdersService = (*OrdersService)(nil)

type OrdersService struct {
	orders   port.OrdersStorage
	products port.ProductsStorage
}

func NewOrders(
	orders port.OrdersStorage, products port.ProductsStorage,
) OrdersService {
	return OrdersService{orders, products}
}

// CreateOrder assembles and persists an order from the request.
// The batch fetch may return fewer products than requested ids;
// comparing the counts is the sole validation before assembly,
// and on a mismatch nothing is persisted.
func (s OrdersService) CreateOrder(
	ctx context.Context, req domain.OrderRequest,
) (domain.Order, error) {
	const op = "OrdersService.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.ProductsByIDs(ctx, req.ProductIDs)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(ps) != len(req.ProductIDs) {
		return domain.Order{}, fmt.Errorf(
			"%s: %w", op, domain.ErrProductsNotFound,
		)
	}

	order, err := s.orders.StoreOrder(ctx, BuildOrder(req, ps))
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s OrdersService) GetOrder(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	const op = "OrdersService.GetOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orders.Order(ctx, email, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s OrdersService) CustomerOrders(
	ctx context.Context, email string,
) ([]domain.Order, error) {
	const op = "OrdersService.CustomerOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := s.orders.OrdersByCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s OrdersService) AllOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrdersService.AllOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s OrdersService) DeleteOrder(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	const op = "OrdersService.DeleteOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orders.RemoveOrder(ctx, email, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}
