package ports

import (
	"context"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order entity.Order) error
}
