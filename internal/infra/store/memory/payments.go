package memory

import (
	"context"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

func (s *Store) SavePayment(ctx context.Context, payment entity.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments = append([]entity.Payment{payment}, s.payments...)
	return nil
}

func (s *Store) RemovePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListPayments(ctx context.Context) ([]entity.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Payment{}, s.payments...), nil
}
