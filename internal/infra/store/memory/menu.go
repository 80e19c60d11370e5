package memory

import (
	"context"
	"fmt"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
)

func (s *Store) ListMenu(ctx context.Context) ([]entity.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.MenuItem{}, s.menu...), nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*entity.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.menuIndex(id)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ports.ErrMenuItemNotFound, id)
	}
	item := s.menu[idx]
	return &item, nil
}

// CreateMenuItem assigns a fresh id and appends the item to the catalog.
func (s *Store) CreateMenuItem(ctx context.Context, item entity.MenuItem) (*entity.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.newID("menu")
	s.menu = append(s.menu, item)
	return &item, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.menuIndex(id)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ports.ErrMenuItemNotFound, id)
	}
	s.menu[idx] = patch.Apply(s.menu[idx])
	item := s.menu[idx]
	return &item, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.menuIndex(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ports.ErrMenuItemNotFound, id)
	}
	s.menu = append(s.menu[:idx], s.menu[idx+1:]...)
	return nil
}

// menuIndex must be called with s.mu held.
func (s *Store) menuIndex(id string) int {
	for i := range s.menu {
		if s.menu[i].ID == id {
			return i
		}
	}
	return -1
}
