package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventNotifier = (*EventsNotifier)(nil)

// An EventsNotifier dispatches product events to the recorder topic
// with at-most-once semantics. Notify puts the event on a bounded
// queue and returns immediately; a full queue drops the event and a
// failed produce is logged, never retried and never surfaced to the
// mutation that triggered it.
type EventsNotifier struct {
	cl      ProducerClient
	encoder Encoder
	queue   chan domain.ProductEvent
}

func NewEventsNotifier(opts ...ProducerOpt) (*EventsNotifier, error) {
	const op = "NewEventsNotifier"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}

	return &EventsNotifier{
		cl:      options.cl,
		encoder: options.encoder,
		queue:   make(chan domain.ProductEvent, options.queueSize),
	}, nil
}

func (n *EventsNotifier) Notify(e domain.ProductEvent) {
	const op = "EventsNotifier.Notify"

	select {
	case n.queue <- e:
	default:
		slog.Warn("queue is full, event dropped",
			"op", op, "productCode", e.ProductCode, "eventType", e.Type,
		)
	}
}

// Run drains the queue until the context is canceled.
func (n *EventsNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-n.queue:
			n.produce(ctx, e)
		}
	}
}

func (n *EventsNotifier) Close() {
	const op = "EventsNotifier.Close"
	log := slog.With("op", op)
	log.Info("closing notifier...")
	n.cl.Close()
	log.Info("notifier is closed")
}

func (n *EventsNotifier) produce(ctx context.Context, e domain.ProductEvent) {
	const op = "EventsNotifier.produce"
	log := slog.With("op", op)

	r, err := n.createRecord(e)
	if err != nil {
		log.Error("failed to create record", "err", err)
		return
	}

	res := n.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		log.Error("failed to produce event", "err", err)
	}
}

func (n *EventsNotifier) createRecord(
	e domain.ProductEvent,
) (*kgo.Record, error) {
	const op = "EventsNotifier.createRecord"

	s := productEventToSchemaV1(e)
	b, err := n.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}

	msgKey := []byte(domain.EventPartitionKey(s.ProductCode))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}
