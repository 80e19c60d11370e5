package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

func TestNewOrderPlaced(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 17, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	ev := NewOrderPlaced(entity.Order{ID: "ord-1", Total: 44000}, now)

	assert.Equal(t, RoutingKeyOrderPlaced, ev.EventType)
	assert.Equal(t, "ord-1", ev.OrderID)
	assert.Equal(t, int64(44000), ev.Total)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
}

func TestNoop(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Noop{}.PublishOrderPlaced(context.Background(), entity.Order{ID: "ord-1"}))
}
