package placement

import (
	"context"
	"fmt"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
)

// --- SaveOrderStep ---

type SaveOrderStep struct {
	orders ports.OrderRepository
	order  entity.Order
}

func NewSaveOrderStep(orders ports.OrderRepository, order entity.Order) *SaveOrderStep {
	return &SaveOrderStep{orders: orders, order: order}
}

func (s *SaveOrderStep) Name() string { return "save_order" }

func (s *SaveOrderStep) Execute(ctx context.Context) error {
	if err := s.orders.SaveOrder(ctx, s.order); err != nil {
		return fmt.Errorf("save order %s: %w", s.order.ID, err)
	}
	return nil
}

func (s *SaveOrderStep) Compensate(ctx context.Context) error {
	return s.orders.RemoveOrder(ctx, s.order.ID)
}

// --- SavePaymentStep ---

type SavePaymentStep struct {
	payments ports.PaymentRepository
	payment  entity.Payment
}

func NewSavePaymentStep(payments ports.PaymentRepository, payment entity.Payment) *SavePaymentStep {
	return &SavePaymentStep{payments: payments, payment: payment}
}

func (s *SavePaymentStep) Name() string { return "save_payment" }

func (s *SavePaymentStep) Execute(ctx context.Context) error {
	if err := s.payments.SavePayment(ctx, s.payment); err != nil {
		return fmt.Errorf("save payment %s: %w", s.payment.ID, err)
	}
	return nil
}

func (s *SavePaymentStep) Compensate(ctx context.Context) error {
	return s.payments.RemovePayment(ctx, s.payment.ID)
}

// --- PublishOrderPlacedStep ---

type PublishOrderPlacedStep struct {
	publisher ports.EventPublisher
	order     entity.Order
}

func NewPublishOrderPlacedStep(publisher ports.EventPublisher, order entity.Order) *PublishOrderPlacedStep {
	return &PublishOrderPlacedStep{publisher: publisher, order: order}
}

func (s *PublishOrderPlacedStep) Name() string { return "publish_order_placed" }

func (s *PublishOrderPlacedStep) Execute(ctx context.Context) error {
	if err := s.publisher.PublishOrderPlaced(ctx, s.order); err != nil {
		return fmt.Errorf("publish order %s: %w", s.order.ID, err)
	}
	return nil
}

// Compensate is a no-op: a published event cannot be recalled and this is
// the last step.
func (s *PublishOrderPlacedStep) Compensate(ctx context.Context) error {
	return nil
}
