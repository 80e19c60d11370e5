package ports

import (
	"context"
	"errors"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

type CatalogRepository interface {
	// Snapshot returns copies of the menu, promos and payment methods that
	// later writes to the store cannot reach.
	Snapshot(ctx context.Context) (checkout.Snapshot, error)
	ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error)
	ListPromos(ctx context.Context) ([]entity.Promo, error)
	ListInventory(ctx context.Context) ([]entity.InventoryItem, error)
}

type MenuRepository interface {
	ListMenu(ctx context.Context) ([]entity.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*entity.MenuItem, error)
	CreateMenuItem(ctx context.Context, item entity.MenuItem) (*entity.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order entity.Order) error
	RemoveOrder(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]entity.Order, error)
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}

type PaymentRepository interface {
	SavePayment(ctx context.Context, payment entity.Payment) error
	RemovePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context) ([]entity.Payment, error)
}

type Store interface {
	CatalogRepository
	MenuRepository
	OrderRepository
	PaymentRepository
}
