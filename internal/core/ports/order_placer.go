package ports

import (
	"context"
	"errors"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

// ErrOrderInProgress is returned when a caller gives up waiting on another
// request that holds the same idempotency key.
var ErrOrderInProgress = errors.New("order with this idempotency key is still being placed")

type OrderPlacer interface {
	// PlaceOrder returns replayed=true when idempotencyKey already produced
	// an order; that order is returned and nothing new is stored.
	PlaceOrder(ctx context.Context, idempotencyKey string, req checkout.Request) (order *entity.Order, replayed bool, err error)
}
