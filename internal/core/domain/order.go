package domain

type (
	PaymentType  string
	ShippingType string
	CarrierType  string
)

const (
	PaymentCash       PaymentType = "CASH"
	PaymentDebitCard  PaymentType = "DEBIT_CARD"
	PaymentCreditCard PaymentType = "CREDIT_CARD"

	ShippingEconomic ShippingType = "ECONOMIC"
	ShippingUrgent   ShippingType = "URGENT"

	CarrierCorreios CarrierType = "CORREIOS"
	CarrierFedex    CarrierType = "FEDEX"
)

type (
	// An Order is a persisted customer order.
	//
	// Products hold value snapshots taken at creation time,
	// never live catalog references.
	Order struct {
		CustomerEmail string
		OrderID       string
		CreatedAt     int64
		Billing       OrderBilling
		Shipping      OrderShipping
		Products      []OrderProduct
	}

	OrderBilling struct {
		Payment    PaymentType
		TotalPrice float64
	}

	OrderShipping struct {
		Type    ShippingType
		Carrier CarrierType
	}

	OrderProduct struct {
		Code  string
		Price float64
	}
)

// An OrderRequest is an inbound request to create an order.
type OrderRequest struct {
	Email      string
	ProductIDs []string
	Payment    PaymentType
	Shipping   OrderShipping
}
