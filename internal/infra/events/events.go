// Package events defines the messages the API emits about orders.
package events

import (
	"context"
	"time"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
)

const RoutingKeyOrderPlaced = "order.placed"

// OrderPlaced is the JSON body published after an order is stored.
type OrderPlaced struct {
	EventType  string       `json:"eventType"`
	OrderID    string       `json:"orderId"`
	Total      int64        `json:"total"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      entity.Order `json:"order"`
}

func NewOrderPlaced(order entity.Order, now time.Time) OrderPlaced {
	return OrderPlaced{
		EventType:  RoutingKeyOrderPlaced,
		OrderID:    order.ID,
		Total:      order.Total,
		OccurredAt: now.UTC(),
		Order:      order,
	}
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

var _ ports.EventPublisher = Noop{}

func (Noop) PublishOrderPlaced(context.Context, entity.Order) error { return nil }
