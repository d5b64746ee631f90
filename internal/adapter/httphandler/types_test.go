package httphandler

import (
	"testing"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderResponse(t *testing.T) {
	req := domain.OrderRequest{
		Email:      "a@b.com",
		ProductIDs: []string{"id1", "id2"},
		Payment:    domain.PaymentCreditCard,
		Shipping: domain.OrderShipping{
			Type:    domain.ShippingUrgent,
			Carrier: domain.CarrierFedex,
		},
	}
	fetched := []domain.Product{
		{ID: "id2", Code: "C2", Price: 25},
		{ID: "id1", Code: "C1", Price: 10},
	}

	order := service.BuildOrder(req, fetched)
	order.OrderID = "order1"
	order.CreatedAt = 1700000000123

	resp := toOrderResponse(order)

	assert.Equal(t, "a@b.com", resp.Email)
	assert.Equal(t, "order1", resp.ID)
	assert.Equal(t, int64(1700000000123), resp.CreatedAt)
	assert.Equal(t, "CREDIT_CARD", resp.Billing.Payment)
	assert.InDelta(t, 35, resp.Billing.TotalPrice, 0)
	assert.Equal(t, "URGENT", resp.Shipping.Type)
	assert.Equal(t, "FEDEX", resp.Shipping.Carrier)

	// products keep the fetch order
	require.Len(t, resp.Products, 2)
	assert.Equal(t, OrderProduct{Code: "C2", Price: 25}, resp.Products[0])
	assert.Equal(t, OrderProduct{Code: "C1", Price: 10}, resp.Products[1])
}
