package domain

import "strconv"

type EventType string

const (
	EventCreated EventType = "PRODUCT_CREATED"
	EventUpdated EventType = "PRODUCT_UPDATED"
	EventDeleted EventType = "PRODUCT_DELETED"
)

const eventTTLSeconds = 5 * 60

// A ProductEvent describes a single catalog mutation.
// It is dispatched asynchronously and recorded on a best-effort basis.
type ProductEvent struct {
	ProductID    string
	ProductCode  string
	ProductPrice float64
	Email        string
	RequestID    string
	Type         EventType
}

type (
	// An EventRecord is the persisted, TTL-expiring form of a ProductEvent.
	EventRecord struct {
		PK        string
		SK        string
		Email     string
		CreatedAt int64
		RequestID string
		Type      EventType
		Info      EventInfo
		TTL       int64
	}

	EventInfo struct {
		ProductID string
		Price     float64
	}
)

// EventPartitionKey groups all events of one product code.
func EventPartitionKey(productCode string) string {
	return "#product_" + productCode
}

// NewEventRecord stamps an event with the record timestamp and its
// composite key. Two events of the same type for the same code within
// one millisecond collide on the key; the store keeps the last write.
func NewEventRecord(e ProductEvent, nowMillis int64) EventRecord {
	return EventRecord{
		PK:        EventPartitionKey(e.ProductCode),
		SK:        string(e.Type) + "#" + strconv.FormatInt(nowMillis, 10),
		Email:     e.Email,
		CreatedAt: nowMillis,
		RequestID: e.RequestID,
		Type:      e.Type,
		Info:      EventInfo{ProductID: e.ProductID, Price: e.ProductPrice},
		TTL:       nowMillis/1000 + eventTTLSeconds,
	}
}

// Expired reports whether the record's time-to-live has passed.
func (r EventRecord) Expired(nowSec int64) bool {
	return r.TTL <= nowSec
}
