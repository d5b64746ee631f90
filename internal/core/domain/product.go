package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductsNotFound = errors.New("some product was not found")
)

type Product struct {
	ID    string
	Name  string
	Code  string
	Model string
	Price float64
	URL   string
}

// An Actor identifies the origin of a catalog mutation.
type Actor struct {
	Email     string
	RequestID string
}
