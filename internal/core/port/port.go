package port

import (
	"context"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
)

type ProductsStorage interface {
	Products(context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	StoreProduct(context.Context, domain.Product) (domain.Product, error)
	ReplaceProduct(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	RemoveProduct(ctx context.Context, id string) (domain.Product, error)
}

type OrdersStorage interface {
	StoreOrder(context.Context, domain.Order) (domain.Order, error)
	Order(ctx context.Context, email, orderID string) (domain.Order, error)
	OrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	Orders(context.Context) ([]domain.Order, error)
	RemoveOrder(ctx context.Context, email, orderID string) (domain.Order, error)
}

type EventsStorage interface {
	StoreEvent(context.Context, domain.EventRecord) error
	EventsByCode(ctx context.Context, productCode string) ([]domain.EventRecord, error)
}

// An EventNotifier submits a product event for asynchronous recording.
// Submission never blocks the caller and gives no delivery guarantee.
type EventNotifier interface {
	Notify(domain.ProductEvent)
}

type EventsSaver interface {
	SaveEvent(context.Context, domain.ProductEvent) error
}

type CatalogService interface {
	ListProducts(context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product, actor domain.Actor) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.Product, actor domain.Actor) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string, actor domain.Actor) (domain.Product, error)
}

type OrdersService interface {
	CreateOrder(context.Context, domain.OrderRequest) (domain.Order, error)
	GetOrder(ctx context.Context, email, orderID string) (domain.Order, error)
	CustomerOrders(ctx context.Context, email string) ([]domain.Order, error)
	AllOrders(context.Context) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, email, orderID string) (domain.Order, error)
}

type EventLogService interface {
	ProductEvents(ctx context.Context, productCode string) ([]domain.EventRecord, error)
}
