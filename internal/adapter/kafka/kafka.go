package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/order-fulfillment/internal/core/domain"
	"github.com/niksmo/order-fulfillment/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl        ProducerClient
	encoder   Encoder
	queueSize int
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

func NotifierQueueOpt(size int) ProducerOpt {
	return func(opts *producerOpts) error {
		if size <= 0 {
			return errors.New("queue size is not positive")
		}
		opts.queueSize = size
		return nil
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productEventToSchemaV1(e domain.ProductEvent) (s schema.ProductEventV1) {
	s.ProductID = e.ProductID
	s.ProductCode = e.ProductCode
	s.ProductPrice = e.ProductPrice
	s.Email = e.Email
	s.RequestID = e.RequestID
	s.EventType = string(e.Type)
	return
}

func productEventToDomain(s schema.ProductEventV1) (e domain.ProductEvent) {
	e.ProductID = s.ProductID
	e.ProductCode = s.ProductCode
	e.ProductPrice = s.ProductPrice
	e.Email = s.Email
	e.RequestID = s.RequestID
	e.Type = domain.EventType(s.EventType)
	return
}
