package service_test

import (
	"testing"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceCreateProduct(t *testing.T) {
	products := new(MockProductsStorage)
	notifier := new(MockEventNotifier)
	s := service.NewCatalog(products, notifier)

	actor := domain.Actor{Email: "a@b.com", RequestID: "req1"}
	p := domain.Product{Name: "Notebook", Code: "C1", Price: 10}
	stored := p
	stored.ID = "generatedID"

	products.On("StoreProduct", t.Context(), p).Return(stored, nil)
	notifier.On("Notify", domain.ProductEvent{
		ProductID:    "generatedID",
		ProductCode:  "C1",
		ProductPrice: 10,
		Email:        "a@b.com",
		RequestID:    "req1",
		Type:         domain.EventCreated,
	}).Return()

	created, err := s.CreateProduct(t.Context(), p, actor)
	require.NoError(t, err)

	assert.Equal(t, "generatedID", created.ID)
	notifier.AssertExpectations(t)
}

func TestCatalogServiceUpdateProduct(t *testing.T) {
	actor := domain.Actor{Email: "a@b.com", RequestID: "req2"}

	t.Run("Regular", func(t *testing.T) {
		products := new(MockProductsStorage)
		notifier := new(MockEventNotifier)
		s := service.NewCatalog(products, notifier)

		p := domain.Product{Name: "Notebook v2", Code: "C1", Price: 15}
		updated := p
		updated.ID = "id1"

		products.On("ReplaceProduct", t.Context(), "id1", p).
			Return(updated, nil)
		notifier.On("Notify", mock.MatchedBy(func(e domain.ProductEvent) bool {
			return e.Type == domain.EventUpdated && e.ProductID == "id1"
		})).Return()

		got, err := s.UpdateProduct(t.Context(), "id1", p, actor)
		require.NoError(t, err)

		assert.Equal(t, updated, got)
		notifier.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		products := new(MockProductsStorage)
		notifier := new(MockEventNotifier)
		s := service.NewCatalog(products, notifier)

		products.On(
			"ReplaceProduct", t.Context(), "absent", mock.Anything,
		).Return(domain.Product{}, domain.ErrProductNotFound)

		_, err := s.UpdateProduct(
			t.Context(), "absent", domain.Product{}, actor,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})
}

func TestCatalogServiceDeleteProduct(t *testing.T) {
	products := new(MockProductsStorage)
	notifier := new(MockEventNotifier)
	s := service.NewCatalog(products, notifier)

	actor := domain.Actor{Email: "a@b.com", RequestID: "req3"}
	prior := domain.Product{ID: "id1", Name: "Notebook", Code: "C1", Price: 10}

	products.On("RemoveProduct", t.Context(), "id1").Return(prior, nil)
	notifier.On("Notify", mock.MatchedBy(func(e domain.ProductEvent) bool {
		return e.Type == domain.EventDeleted && e.ProductCode == "C1"
	})).Return()

	deleted, err := s.DeleteProduct(t.Context(), "id1", actor)
	require.NoError(t, err)

	assert.Equal(t, prior, deleted)
	notifier.AssertExpectations(t)
}
