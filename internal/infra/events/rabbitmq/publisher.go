// Package rabbitmq publishes order events to a RabbitMQ topic exchange with
// publisher confirms.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/infra/events"
	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors"
	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors/constants"
)

var ErrNacked = errors.New("rabbitmq: publish nacked by broker")

// confirmation resolves when the broker acks or nacks one publish.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// channel is the subset of a confirm-mode *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishDeferred(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// amqpChannel ties each publish to its own delivery tag, so a confirm that
// arrives after its caller gave up is never read by the next publish.
type amqpChannel struct {
	*amqp.Channel
}

func (c amqpChannel) PublishDeferred(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("rabbitmq: channel is not in confirm mode")
	}
	return dc, nil
}

type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Dial connects to url, enables publisher confirms and declares a durable
// topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: enable confirms: %w", err)
	}

	p, err := newPublisher(amqpChannel{ch}, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq: declare exchange %q: %w", exchange, err)
	}
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
	}, nil
}

// PublishOrderPlaced publishes a persistent order.placed message and waits
// for the broker to confirm it or for ctx to end.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, order entity.Order) error {
	body, err := json.Marshal(events.NewOrderPlaced(order, p.now()))
	if err != nil {
		return fmt.Errorf("rabbitmq: encode event for %s: %w", order.ID, err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    order.ID,
		Timestamp:    p.now().UTC(),
		Type:         events.RoutingKeyOrderPlaced,
		Headers: amqp.Table{
			constants.HeaderXRequestId:      interceptors.RequestID(ctx),
			constants.HeaderXIdempotencyKey: interceptors.IdempotencyKey(ctx),
		},
		Body: body,
	}
	conf, err := p.ch.PublishDeferred(ctx, p.exchange, events.RoutingKeyOrderPlaced, msg)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", order.ID, err)
	}

	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq: confirm %s: %w", order.ID, err)
	}
	if !acked {
		return fmt.Errorf("%w: order %s", ErrNacked, order.ID)
	}
	slog.DebugContext(ctx, "order event confirmed", "order_id", order.ID)
	return nil
}

func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq: connection is closed")
	}
	return nil
}

func (p *Publisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
