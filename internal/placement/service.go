// Package placement turns a checkout request into a stored order. It prices
// the cart with the checkout calculator and persists the result as a unit.
package placement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
)

const (
	idempotencyOperation = "place_order"

	// pendingMarker holds an idempotency key while its order is being placed.
	pendingMarker = "pending"
)

// DefaultIdempotencyTTL is how long a client key maps to its order.
const DefaultIdempotencyTTL = 24 * time.Hour

// DefaultReplayPollInterval is how often a caller waiting on a key held by
// another request checks whether that request has finished.
const DefaultReplayPollInterval = 25 * time.Millisecond

type Service struct {
	store        ports.Store
	calc         *checkout.Calculator
	publisher    ports.EventPublisher
	logRepo      placementlog.Repository
	cache        ports.IdempotencyCache
	cacheTTL     time.Duration
	pollInterval time.Duration
}

type Option func(*Service)

func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogRepository(r placementlog.Repository) Option {
	return func(s *Service) { s.logRepo = r }
}

// WithIdempotencyCache enables replay of orders by client key.
func WithIdempotencyCache(c ports.IdempotencyCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithReplayPollInterval(d time.Duration) Option {
	return func(s *Service) { s.pollInterval = d }
}

var _ ports.OrderPlacer = (*Service)(nil)

func NewService(store ports.Store, calc *checkout.Calculator, opts ...Option) *Service {
	s := &Service{
		store:        store,
		calc:         calc,
		cacheTTL:     DefaultIdempotencyTTL,
		pollInterval: DefaultReplayPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pollInterval <= 0 {
		s.pollInterval = DefaultReplayPollInterval
	}
	return s
}

// PlaceOrder prices req against the current catalog and stores the order and
// its payment. When idempotencyKey was already used for a stored order, that
// order is returned with replayed set and nothing new is created. Concurrent
// calls with one key place a single order; the others wait for it.
func (s *Service) PlaceOrder(ctx context.Context, idempotencyKey string, req checkout.Request) (order *entity.Order, replayed bool, err error) {
	prev, reserved, err := s.reserve(ctx, idempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if prev != nil {
		slog.InfoContext(ctx, "replaying order for idempotency key", "order_id", prev.ID, "idempotency_key", idempotencyKey)
		return prev, true, nil
	}
	defer func() {
		if err != nil && reserved {
			s.release(ctx, idempotencyKey)
		}
	}()

	placed, err := s.place(ctx, req)
	if err != nil {
		return nil, false, err
	}

	s.remember(ctx, idempotencyKey, placed.ID)
	return placed, false, nil
}

func (s *Service) place(ctx context.Context, req checkout.Request) (*entity.Order, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	res, err := s.calc.Compute(req, snap)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(res.Order)
	if err != nil {
		return nil, fmt.Errorf("encode order %s: %w", res.Order.ID, err)
	}

	steps := []Step{
		NewSaveOrderStep(s.store, res.Order),
		NewSavePaymentStep(s.store, res.Payment),
	}
	if s.publisher != nil {
		steps = append(steps, NewPublishOrderPlacedStep(s.publisher, res.Order))
	}
	if err := NewOrchestrator(res.Order.ID, steps, s.logRepo, WithPayload(string(payload))).Start(ctx); err != nil {
		return nil, err
	}
	return &res.Order, nil
}

// reserve claims key for this call. It returns the order an earlier call
// placed under key, or reports whether the claim is held. While another call
// holds the key, reserve polls until that call stores its order id, gives
// the key up, or ctx ends. Cache failures degrade to an unreserved placement
// so that a broken cache never blocks checkout.
func (s *Service) reserve(ctx context.Context, key string) (*entity.Order, bool, error) {
	if s.cache == nil || key == "" {
		return nil, false, nil
	}
	ck := s.cacheKey(key)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := s.cache.SetNX(ctx, ck, pendingMarker, s.cacheTTL)
		if err != nil {
			slog.WarnContext(ctx, "idempotency reservation failed", "idempotency_key", key, "error", err)
			return nil, false, nil
		}
		if ok {
			return nil, true, nil
		}

		val, err := s.cache.Get(ctx, ck)
		if err != nil {
			slog.WarnContext(ctx, "idempotency lookup failed", "idempotency_key", key, "error", err)
			return nil, false, nil
		}
		if val != "" && val != pendingMarker {
			order, err := s.store.GetOrder(ctx, val)
			if err == nil {
				return order, false, nil
			}
			if !errors.Is(err, ports.ErrOrderNotFound) {
				slog.WarnContext(ctx, "idempotency replay failed", "order_id", val, "error", err)
			}
			// The order behind the key is gone; place a fresh one.
			return nil, false, nil
		}

		select {
		case <-ctx.Done():
			return nil, false, fmt.Errorf("%w: %w", ports.ErrOrderInProgress, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Service) remember(ctx context.Context, key, orderID string) {
	if s.cache == nil || key == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := s.cache.Set(ctx, s.cacheKey(key), orderID, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to store idempotency key", "idempotency_key", key, "order_id", orderID, "error", err)
	}
}

// release gives key up after a failed placement so a retry can claim it.
func (s *Service) release(ctx context.Context, key string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.cache.Delete(ctx, s.cacheKey(key)); err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key", "idempotency_key", key, "error", err)
	}
}

func (s *Service) cacheKey(key string) string {
	return s.cache.GenerateKey(idempotencyOperation, key)
}
