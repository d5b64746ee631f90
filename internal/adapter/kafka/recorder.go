package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/order-fulfillment/internal/core/port"
	"github.com/niksmo/order-fulfillment/pkg/schema"
)

// A productEventCodec used for serde [schema.ProductEventV1].
type productEventCodec struct {
	serde Serde
}

func newProductEventCodec(s Serde) productEventCodec {
	return productEventCodec{s}
}

func (c productEventCodec) Encode(v any) ([]byte, error) {
	const op = "productEventCodec.Encode"
	if _, ok := v.(schema.ProductEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c productEventCodec) Decode(data []byte) (any, error) {
	const op = "productEventCodec.Decode"
	var s schema.ProductEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An EventsRecorderProcessor consumes the product-events stream and
// appends each event to the event log. Recording is best-effort: a
// failed save is logged and the stream moves on.
type EventsRecorderProcessor struct {
	gp    *goka.Processor
	saver port.EventsSaver
}

func NewEventsRecorderProc(
	seedBrokers []string,
	inputTopic string,
	group string,
	eventSerde Serde,
	saver port.EventsSaver,
) (*EventsRecorderProcessor, error) {
	const op = "NewEventsRecorderProc"

	p := &EventsRecorderProcessor{saver: saver}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputTopic),
			newProductEventCodec(eventSerde),
			p.processFn,
		),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.gp = gp
	return p, nil
}

func (p *EventsRecorderProcessor) Run(ctx context.Context) {
	const op = "EventsRecorderProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *EventsRecorderProcessor) Close() {
	const op = "EventsRecorderProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p *EventsRecorderProcessor) processFn(ctx goka.Context, msg any) {
	const op = "EventsRecorderProcessor.processFn"

	s, ok := msg.(schema.ProductEventV1)
	if !ok {
		slog.Error("unexpected message type", "op", op)
		return
	}

	e := productEventToDomain(s)
	if err := p.saver.SaveEvent(ctx.Context(), e); err != nil {
		slog.Error("failed to save event",
			"op", op, "productCode", e.ProductCode, "err", err,
		)
	}
}
