package httpx

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jcmexdev/warung-orders/internal/core/checkout"
	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
)

type CreateOrderRequest struct {
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	DeliveryAddress string        `json:"deliveryAddress"`
	PromoCode       string        `json:"promoCode"`
	PaymentMethodID string        `json:"paymentMethodId"`
	Items           []CartLineDTO `json:"items"`
}

type CartLineDTO struct {
	MenuID string   `json:"menuId"`
	Qty    Quantity `json:"qty"`
}

// Quantity accepts a JSON number or a numeric string. Fractions are
// truncated. Anything else decodes as 0, which checkout prices as 1.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = 0

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	switch {
	case math.IsNaN(f):
	case f >= math.MaxInt64:
		*q = Quantity(math.MaxInt)
	case f <= math.MinInt64:
		*q = Quantity(math.MinInt)
	default:
		*q = Quantity(int(f))
	}
	return nil
}

func (r CreateOrderRequest) toCheckout() checkout.Request {
	items := make([]entity.CartLine, len(r.Items))
	for i, it := range r.Items {
		items[i] = entity.CartLine{MenuID: it.MenuID, Qty: int(it.Qty)}
	}
	return checkout.Request{
		Customer: entity.Customer{
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Address: r.DeliveryAddress,
		},
		PaymentMethodID: r.PaymentMethodID,
		PromoCode:       r.PromoCode,
		Items:           items,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateMenuItemRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	Stock      int    `json:"stock"`
	SpicyLevel int    `json:"spicyLevel"`
	Featured   bool   `json:"featured"`
}

// UpdateMenuItemRequest is a partial update; absent fields are kept.
type UpdateMenuItemRequest struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	Price      *int64  `json:"price"`
	Stock      *int    `json:"stock"`
	SpicyLevel *int    `json:"spicyLevel"`
	Featured   *bool   `json:"featured"`
}

func (r UpdateMenuItemRequest) toPatch() entity.MenuItemPatch {
	return entity.MenuItemPatch{
		Name:       r.Name,
		Category:   r.Category,
		Price:      r.Price,
		Stock:      r.Stock,
		SpicyLevel: r.SpicyLevel,
		Featured:   r.Featured,
	}
}

type PlacementEntryDTO struct {
	Status        placementlog.Status `json:"status"`
	Step          string              `json:"step,omitempty"`
	ErrorMessages json.RawMessage     `json:"errors,omitempty"`
	TraceID       string              `json:"traceId,omitempty"`
	SpanID        string              `json:"spanId,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type PlacementResponse struct {
	OrderID string              `json:"orderId"`
	Status  placementlog.Status `json:"status"`
	Entries []PlacementEntryDTO `json:"entries"`
}

func newPlacementResponse(latest *placementlog.Entry, entries []placementlog.Entry) PlacementResponse {
	out := PlacementResponse{
		OrderID: latest.OrderID,
		Status:  latest.Status,
		Entries: make([]PlacementEntryDTO, len(entries)),
	}
	for i, e := range entries {
		dto := PlacementEntryDTO{
			Status:    e.Status,
			Step:      e.CurrentStep,
			TraceID:   e.TraceID,
			SpanID:    e.SpanID,
			UpdatedAt: e.UpdatedAt,
		}
		if e.ErrorMessages != "" && e.ErrorMessages != "[]" && json.Valid([]byte(e.ErrorMessages)) {
			dto.ErrorMessages = json.RawMessage(e.ErrorMessages)
		}
		out.Entries[i] = dto
	}
	return out
}

type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
