package httphandler

import "github.com/niksmo/order-fulfillment/internal/core/domain"

type (
	Product struct {
		ID         string  `json:"id"`
		Name       string  `json:"productName"`
		Code       string  `json:"code"`
		Price      float64 `json:"price"`
		Model      string  `json:"model"`
		ProductURL string  `json:"productUrl"`
	}

	OrderRequest struct {
		Email      string        `json:"email"`
		ProductIDs []string      `json:"productIds"`
		Payment    string        `json:"payment"`
		Shipping   OrderShipping `json:"shipping"`
	}

	OrderShipping struct {
		Type    string `json:"type"`
		Carrier string `json:"carrier"`
	}

	OrderBilling struct {
		Payment    string  `json:"payment"`
		TotalPrice float64 `json:"totalPrice"`
	}

	OrderProduct struct {
		Code  string  `json:"code"`
		Price float64 `json:"price"`
	}

	OrderResponse struct {
		Email     string         `json:"email"`
		ID        string         `json:"id"`
		CreatedAt int64          `json:"createdAt"`
		Billing   OrderBilling   `json:"billing"`
		Shipping  OrderShipping  `json:"shipping"`
		Products  []OrderProduct `json:"products"`
	}

	ProductEvent struct {
		EventType string           `json:"eventType"`
		Email     string           `json:"email"`
		CreatedAt int64            `json:"createdAt"`
		RequestID string           `json:"requestId"`
		Info      ProductEventInfo `json:"info"`
	}

	ProductEventInfo struct {
		ProductID string  `json:"productId"`
		Price     float64 `json:"price"`
	}
)

func toProduct(p domain.Product) Product {
	return Product{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		Price:      p.Price,
		Model:      p.Model,
		ProductURL: p.URL,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toDomainProduct(p Product) domain.Product {
	return domain.Product{
		ID:    p.ID,
		Name:  p.Name,
		Code:  p.Code,
		Price: p.Price,
		Model: p.Model,
		URL:   p.ProductURL,
	}
}

func toDomainOrderRequest(r OrderRequest) domain.OrderRequest {
	return domain.OrderRequest{
		Email:      r.Email,
		ProductIDs: r.ProductIDs,
		Payment:    domain.PaymentType(r.Payment),
		Shipping: domain.OrderShipping{
			Type:    domain.ShippingType(r.Shipping.Type),
			Carrier: domain.CarrierType(r.Shipping.Carrier),
		},
	}
}

// toOrderResponse reshapes a persisted order into the response schema.
// Pure renaming: enum fields pass through unvalidated and the products
// sequence keeps its stored (fetch) order.
func toOrderResponse(order domain.Order) OrderResponse {
	products := make([]OrderProduct, 0, len(order.Products))
	for _, p := range order.Products {
		products = append(products, OrderProduct{
			Code:  p.Code,
			Price: p.Price,
		})
	}

	return OrderResponse{
		Email:     order.CustomerEmail,
		ID:        order.OrderID,
		CreatedAt: order.CreatedAt,
		Billing: OrderBilling{
			Payment:    string(order.Billing.Payment),
			TotalPrice: order.Billing.TotalPrice,
		},
		Shipping: OrderShipping{
			Type:    string(order.Shipping.Type),
			Carrier: string(order.Shipping.Carrier),
		},
		Products: products,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

func toProductEvents(recs []domain.EventRecord) []ProductEvent {
	out := make([]ProductEvent, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ProductEvent{
			EventType: string(rec.Type),
			Email:     rec.Email,
			CreatedAt: rec.CreatedAt,
			RequestID: rec.RequestID,
			Info: ProductEventInfo{
				ProductID: rec.Info.ProductID,
				Price:     rec.Info.Price,
			},
		})
	}
	return out
}
