package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

// Sequencer hands out the next sequence number for a partition.
type Sequencer interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       channel
	seq      Sequencer
	producer string
	logger   *zap.Logger
	now      func() time.Time
}

type PublisherOptions struct {
	Producer string
	Logger   *zap.Logger
}

func NewPublisher(conn *amqp.Connection, seq Sequencer, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch, seq, opts), nil
}

func newPublisher(ch channel, seq Sequencer, opts PublisherOptions) *Publisher {
	producer := opts.Producer
	if producer == "" {
		producer = bookingServiceName
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		ch:       ch,
		seq:      seq,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) CheckoutSubmitted(ctx context.Context, s checkout.Submission) error {
	meta, seq, err := p.prepare(ctx, s.OrderID)
	if err != nil {
		return err
	}
	return p.publish(ctx, CheckoutSubmittedRoutingKey, newCheckoutSubmittedEvent(meta, seq, p.producer, s, p.now()))
}

func (p *Publisher) VendorAccepted(ctx context.Context, s vendorwait.Snapshot) error {
	meta, seq, err := p.prepare(ctx, s.OrderID)
	if err != nil {
		return err
	}
	return p.publish(ctx, VendorAcceptedRoutingKey, newVendorAcceptedEvent(meta, seq, p.producer, s, p.now()))
}

func (p *Publisher) WaitExpired(ctx context.Context, s vendorwait.Snapshot) error {
	meta, seq, err := p.prepare(ctx, s.OrderID)
	if err != nil {
		return err
	}
	return p.publish(ctx, WaitExpiredRoutingKey, newWaitExpiredEvent(meta, seq, p.producer, s, p.now()))
}

func (p *Publisher) prepare(ctx context.Context, orderID string) (EventMeta, int64, error) {
	meta := EventMeta{
		CorrelationID: middleware.GetCorrelationID(ctx),
		PartitionKey:  orderID,
	}
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}
	seq, err := p.seq.NextSequence(ctx, orderID)
	if err != nil {
		return EventMeta{}, 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return meta, seq, nil
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}
	if err := p.publishJSON(ctx, routingKey, body); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	p.logger.Debug("event published", zap.String("routing_key", routingKey))
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NoopPublisher drops every event. It stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) CheckoutSubmitted(context.Context, checkout.Submission) error { return nil }
func (NoopPublisher) VendorAccepted(context.Context, vendorwait.Snapshot) error { return nil }
func (NoopPublisher) WaitExpired(context.Context, vendorwait.Snapshot) error { return nil }
func (NoopPublisher) Close() error { return nil }
