package memory

import (
	"context"
	"fmt"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
)

var _ ports.Store = (*Store)(nil)

func (s *Store) SaveOrder(ctx context.Context, order entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append([]entity.Order{cloneOrder(order)}, s.orders...)
	return nil
}

// RemoveOrder is a no-op for unknown ids so that it can be retried.
func (s *Store) RemoveOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context) ([]entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrOrderNotFound, id)
}

// UpdateOrderStatus sets the status of an order. An empty status leaves the
// order unchanged.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if status != "" {
			s.orders[i].Status = status
		}
		c := cloneOrder(s.orders[i])
		return &c, nil
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrOrderNotFound, id)
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderLine(nil), o.Items...)
	if o.PromoCode != nil {
		code := *o.PromoCode
		o.PromoCode = &code
	}
	return o
}
