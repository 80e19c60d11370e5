package placement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/infra/store/memory"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
)

// fakeCache sleeps for latency on every call to stand in for a network
// round trip.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	ttl     time.Duration
	getErr  error
	latency time.Duration
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(c.latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.data[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	time.Sleep(c.latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	c.ttl = ttl
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	time.Sleep(c.latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = value.(string)
	c.ttl = ttl
	return true, nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	time.Sleep(c.latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func (c *fakeCache) value(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

type fakePublisher struct {
	mu        sync.Mutex
	err       error
	published []entity.Order
}

func (p *fakePublisher) PublishOrderPlaced(ctx context.Context, order entity.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, order)
	return nil
}

func (p *fakePublisher) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func placeRequest() checkout.Request {
	return checkout.Request{
		Customer:        entity.Customer{Name: "Bang Jali", Phone: "0812"},
		PaymentMethodID: "gopay",
		PromoCode:       "BETAWI10",
		Items:           []entity.CartLine{{MenuID: "m1", Qty: 2}},
	}
}

func TestPlaceOrder_PersistsOrderAndPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	pub := &fakePublisher{}
	logRepo := &memLog{}
	svc := NewService(store, checkout.NewCalculator(), WithPublisher(pub), WithLogRepository(logRepo))

	order, replayed, err := svc.PlaceOrder(ctx, "", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, int64(44000), order.Subtotal)
	assert.Equal(t, int64(4400), order.Discount)
	assert.Equal(t, int64(41100), order.Total)

	stored, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)

	payments, err := store.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, order.ID, payments[0].OrderID)
	assert.Equal(t, entity.PaymentStatusPaid, payments[0].Status)

	require.Len(t, pub.published, 1)
	assert.Equal(t, order.ID, pub.published[0].ID)

	statuses := logRepo.statuses()
	assert.Equal(t, placementlog.StatusStarted, statuses[0])
	assert.Equal(t, placementlog.StatusCompleted, statuses[len(statuses)-1])
	assert.Contains(t, logRepo.entries[0].Payload, order.ID)

	menu, err := store.ListMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, menu[0].Stock, "placing an order leaves stock alone")
}

func TestPlaceOrder_PublishFailureRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	broker := errors.New("broker down")
	svc := NewService(store, checkout.NewCalculator(), WithPublisher(&fakePublisher{err: broker}))

	order, _, err := svc.PlaceOrder(ctx, "", placeRequest())
	require.ErrorIs(t, err, broker)
	assert.Nil(t, order)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	payments, err := store.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPlaceOrder_CheckoutErrorStoresNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	logRepo := &memLog{}
	svc := NewService(store, checkout.NewCalculator(), WithLogRepository(logRepo))

	req := placeRequest()
	req.Items = append(req.Items, entity.CartLine{MenuID: "m404", Qty: 1})

	_, _, err := svc.PlaceOrder(ctx, "", req)
	require.ErrorIs(t, err, checkout.ErrUnknownMenuItem)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, logRepo.statuses())
}

func TestPlaceOrder_IdempotencyReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	cache := newFakeCache()
	pub := &fakePublisher{}
	svc := NewService(store, checkout.NewCalculator(),
		WithPublisher(pub),
		WithIdempotencyCache(cache, time.Hour))

	first, replayed, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	stored, _ := cache.value("test:place_order:key-1")
	assert.Equal(t, first.ID, stored)
	assert.Equal(t, time.Hour, cache.ttl)

	second, replayed, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, second.ID)

	third, replayed, err := svc.PlaceOrder(ctx, "key-2", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.NotEqual(t, first.ID, third.ID)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Len(t, pub.published, 2)
}

func TestPlaceOrder_CacheFailureDoesNotBlockCheckout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	svc := NewService(memory.NewStore(), checkout.NewCalculator(), WithIdempotencyCache(cache, time.Minute))

	order, replayed, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.NotEmpty(t, order.ID)
}

func TestPlaceOrder_StaleKeyPlacesNewOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := newFakeCache()
	cache.data["test:place_order:key-1"] = "ord-gone"
	svc := NewService(memory.NewStore(), checkout.NewCalculator(), WithIdempotencyCache(cache, time.Minute))

	order, replayed, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.NotEqual(t, "ord-gone", order.ID)
}

func TestPlaceOrder_ConcurrentRetriesPlaceOneOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	cache := newFakeCache()
	cache.latency = 5 * time.Millisecond
	svc := NewService(store, checkout.NewCalculator(),
		WithIdempotencyCache(cache, time.Hour),
		WithReplayPollInterval(5*time.Millisecond))

	const callers = 20
	type result struct {
		id       string
		replayed bool
		err      error
	}
	results := make(chan result, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, replayed, err := svc.PlaceOrder(ctx, "same-key", placeRequest())
			r := result{replayed: replayed, err: err}
			if order != nil {
				r.id = order.ID
			}
			results <- r
		}()
	}
	wg.Wait()
	close(results)

	ids := map[string]struct{}{}
	fresh := 0
	for r := range results {
		require.NoError(t, r.err)
		ids[r.id] = struct{}{}
		if !r.replayed {
			fresh++
		}
	}
	assert.Len(t, ids, 1, "every caller sees the same order")
	assert.Equal(t, 1, fresh)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrder_FailureReleasesKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := newFakeCache()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(memory.NewStore(), checkout.NewCalculator(),
		WithPublisher(pub),
		WithIdempotencyCache(cache, time.Hour))

	_, _, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.Error(t, err)
	_, held := cache.value("test:place_order:key-1")
	assert.False(t, held, "a failed placement gives its key up")

	pub.setErr(nil)
	order, replayed, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.NoError(t, err)
	assert.False(t, replayed)
	stored, _ := cache.value("test:place_order:key-1")
	assert.Equal(t, order.ID, stored)
}

func TestPlaceOrder_CheckoutErrorReleasesKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := newFakeCache()
	svc := NewService(memory.NewStore(), checkout.NewCalculator(), WithIdempotencyCache(cache, time.Hour))

	req := placeRequest()
	req.PaymentMethodID = "bitcoin"
	_, _, err := svc.PlaceOrder(ctx, "key-1", req)
	require.ErrorIs(t, err, checkout.ErrUnknownPaymentMethod)

	_, held := cache.value("test:place_order:key-1")
	assert.False(t, held)
}

func TestPlaceOrder_WaitingOnHeldKeyEndsWithContext(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	cache.data["test:place_order:key-1"] = pendingMarker
	store := memory.NewStore()
	svc := NewService(store, checkout.NewCalculator(),
		WithIdempotencyCache(cache, time.Hour),
		WithReplayPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	order, _, err := svc.PlaceOrder(ctx, "key-1", placeRequest())
	require.ErrorIs(t, err, ports.ErrOrderInProgress)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, order)

	held, _ := cache.value("test:place_order:key-1")
	assert.Equal(t, pendingMarker, held, "the holder keeps its reservation")

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
