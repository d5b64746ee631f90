package service_test

import (
	"context"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductsStorage struct {
	mock.Mock
}

func (m *MockProductsStorage) Products(
	ctx context.Context,
) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) ProductsByIDs(
	ctx context.Context, ids []string,
) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) StoreProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) ReplaceProduct(
	ctx context.Context, id string, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) RemoveProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

type MockOrdersStorage struct {
	mock.Mock
}

func (m *MockOrdersStorage) StoreOrder(
	ctx context.Context, order domain.Order,
) (domain.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) Order(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	args := m.Called(ctx, email, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) OrdersByCustomer(
	ctx context.Context, email string,
) ([]domain.Order, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) Orders(
	ctx context.Context,
) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) RemoveOrder(
	ctx context.Context, email, orderID string,
) (domain.Order, error) {
	args := m.Called(ctx, email, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

type MockEventsStorage struct {
	mock.Mock
}

func (m *MockEventsStorage) StoreEvent(
	ctx context.Context, rec domain.EventRecord,
) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEventsStorage) EventsByCode(
	ctx context.Context, productCode string,
) ([]domain.EventRecord, error) {
	args := m.Called(ctx, productCode)
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

type MockEventNotifier struct {
	mock.Mock
}

func (m *MockEventNotifier) Notify(e domain.ProductEvent) {
	m.Called(e)
}
