package service

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
)

var _ port.EventsSaver = (*EventLogService)(nil)
var _ port.EventLogService = (*EventLogService)(nil)

// An EventLogService appends product events to the event log and reads
// them back, treating records past their time-to-live as absent.
type EventLogService struct {
	events port.EventsStorage
}

func NewEventLog(events port.EventsStorage) EventLogService {
	return EventLogService{events}
}

// SaveEvent stamps the event with the current time and appends it.
// Repeated identical events within one millisecond are not deduplicated.
func (s EventLogService) SaveEvent(
	ctx context.Context, e domain.ProductEvent,
) error {
	const op = "EventLogService.SaveEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rec := domain.NewEventRecord(e, time.Now().UnixMilli())
	if err := s.events.StoreEvent(ctx, rec); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s EventLogService) ProductEvents(
	ctx context.Context, productCode string,
) ([]domain.EventRecord, error) {
	const op = "EventLogService.ProductEvents"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recs, err := s.events.EventsByCode(ctx, productCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	nowSec := time.Now().Unix()
	live := recs[:0]
	for _, rec := range recs {
		if rec.Expired(nowSec) {
			continue
		}
		live = append(live, rec)
	}
	return live, nil
}
