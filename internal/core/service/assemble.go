package service

import "github.com/niksmo/order-fulfillment/internal/core/domain"

// BuildOrder materializes an order from the request and the fetched
// catalog products. The total is summed in fetch order, which the
// batch fetch may have reordered relative to the request, and every
// product is embedded as a {code, price} snapshot.
//
// The caller must have verified that fetched covers every requested id.
func BuildOrder(
	req domain.OrderRequest, fetched []domain.Product,
) domain.Order {
	var totalPrice float64
	products := make([]domain.OrderProduct, 0, len(fetched))

	for _, p := range fetched {
		totalPrice += p.Price
		products = append(products, domain.OrderProduct{
			Code:  p.Code,
			Price: p.Price,
		})
	}

	return domain.Order{
		CustomerEmail: req.Email,
		Billing: domain.OrderBilling{
			Payment:    req.Payment,
			TotalPrice: totalPrice,
		},
		Shipping: req.Shipping,
		Products: products,
	}
}
