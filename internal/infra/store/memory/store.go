// Package memory is the process-local store behind the API. Everything it
// holds is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

type Store struct {
	mu             sync.RWMutex
	menu           []entity.MenuItem
	promos         []entity.Promo
	paymentMethods []entity.PaymentMethod
	inventory      []entity.InventoryItem
	// orders and payments are kept newest first.
	orders   []entity.Order
	payments []entity.Payment
	newID    func(prefix string) string
}

type Option func(*Store)

func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore returns a store seeded with the warung's menu, promos, payment
// methods and raw-material inventory.
func NewStore(opts ...Option) *Store {
	s := &Store{
		menu:           seedMenu(),
		promos:         seedPromos(),
		paymentMethods: seedPaymentMethods(),
		inventory:      seedInventory(),
		newID:          checkout.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Snapshot(ctx context.Context) (checkout.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return checkout.Snapshot{
		Menu:           append([]entity.MenuItem(nil), s.menu...),
		Promos:         append([]entity.Promo(nil), s.promos...),
		PaymentMethods: append([]entity.PaymentMethod(nil), s.paymentMethods...),
	}, nil
}

func (s *Store) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.PaymentMethod{}, s.paymentMethods...), nil
}

func (s *Store) ListPromos(ctx context.Context) ([]entity.Promo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Promo{}, s.promos...), nil
}

func (s *Store) ListInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.InventoryItem{}, s.inventory...), nil
}
