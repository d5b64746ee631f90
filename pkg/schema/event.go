package schema

import "context"

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "fulfillment",
	"name": "product_event",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "product_code", "type": "string"},
		{"name": "product_price", "type": "double"},
		{"name": "email", "type": "string"},
		{"name": "request_id", "type": "string"},
		{"name": "event_type", "type": "string"}
	]
}`

type ProductEventV1 struct {
	ProductID    string  `avro:"product_id"`
	ProductCode  string  `avro:"product_code"`
	ProductPrice float64 `avro:"product_price"`
	Email        string  `avro:"email"`
	RequestID    string  `avro:"request_id"`
	EventType    string  `avro:"event_type"`
}

func NewSerdeProductEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeProductEventV1"
	return serdeConstructor(
		ctx,
		ProductEventSchemaTextV1,
		ProductEventV1{},
		op,
		opts...,
	)
}
