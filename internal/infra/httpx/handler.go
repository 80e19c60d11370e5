package httpx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/warung-orders/internal/core/dashboard"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/core/ports"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors"
)

const appName = "Warung Mpok Mar API"

var tracer = otel.Tracer("github.com/jcmexdev/warung-orders/internal/infra/httpx")

// Handler serves the warung API on top of the store and the order placer.
type Handler struct {
	store   ports.Store
	placer  ports.OrderPlacer
	history placementlog.Reader
}

type HandlerOption func(*Handler)

// WithPlacementHistory serves the placement log of each order.
func WithPlacementHistory(r placementlog.Reader) HandlerOption {
	return func(h *Handler) { h.history = r }
}

func NewHandler(store ports.Store, placer ports.OrderPlacer, opts ...HandlerOption) *Handler {
	h := &Handler{store: store, placer: placer}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", App: appName})
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.store.ListMenu(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, menu)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" || req.Price <= 0 {
		writeError(w, r, http.StatusBadRequest, "bad_request", "name, category and a positive price are required")
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), entity.MenuItem{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		Stock:      req.Stock,
		SpicyLevel: req.SpicyLevel,
		Featured:   req.Featured,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateMenuItemRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, r, http.StatusBadRequest, "bad_request", "price must not be negative")
		return
	}

	item, err := h.store.UpdateMenuItem(r.Context(), id, req.toPatch())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListPaymentMethods(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, methods)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, orders)
}

func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, order)
}

// GetPlacement returns the latest placement state of an order and every log
// entry that led to it.
func (h *Handler) GetPlacement(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, r, http.StatusServiceUnavailable, "placement_log_disabled", "placement log is not configured")
		return
	}

	ctx := r.Context()
	orderID := chi.URLParam(r, "id")
	latest, err := h.history.GetLatest(ctx, orderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	entries, err := h.history.History(ctx, orderID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newPlacementResponse(latest, entries))
}

// CreateOrder prices the cart and stores the order. A repeated
// X-Idempotency-Key answers 200 with the order placed the first time.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "checkout.place_order")
	defer span.End()
	r = r.WithContext(ctx)

	var req CreateOrderRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	idempKey := interceptors.IdempotencyKey(ctx)
	slog.InfoContext(ctx, "placing order",
		"request_id", interceptors.RequestID(ctx),
		"idempotency_key", idempKey,
		"items", len(req.Items),
		"payment_method", req.PaymentMethodID,
	)

	order, replayed, err := h.placer.PlaceOrder(ctx, idempKey, req.toCheckout())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeDomainError(w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int64("order.total", order.Total),
		attribute.Bool("order.replayed", replayed),
	)

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	writeJSON(w, r, status, order)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	order, err := h.store.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), entity.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, order)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	payments, err := h.store.ListPayments(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	inventory, err := h.store.ListInventory(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	promos, err := h.store.ListPromos(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard.Summarize(orders, payments, inventory, promos))
}

// decode reads a JSON body. An empty body decodes to the zero value.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
