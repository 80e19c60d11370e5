// Package checkout prices a cart against a catalog snapshot and produces the
// order and payment records for it.
package checkout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/warung-orders/internal/core/domain/entity"
)

// Snapshot is the read-only view of the catalog a checkout is priced against.
type Snapshot struct {
	Menu           []entity.MenuItem
	Promos         []entity.Promo
	PaymentMethods []entity.PaymentMethod
}

type Request struct {
	Customer        entity.Customer
	PaymentMethodID string
	PromoCode       string
	Items           []entity.CartLine
}

type Result struct {
	Order   entity.Order
	Payment entity.Payment
}

// Calculator is stateless apart from its id and clock sources and may be
// shared between goroutines.
type Calculator struct {
	newID func(prefix string) string
	now   func() time.Time
}

type Option func(*Calculator)

func WithIDGenerator(fn func(prefix string) string) Option {
	return func(c *Calculator) { c.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(c *Calculator) { c.now = fn }
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		newID: NewID,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewID returns a prefixed random identifier, e.g. "ord-3f6c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Compute validates the request and prices it. Either both records are
// returned or an error is, never a partial order.
func (c *Calculator) Compute(req Request, snap Snapshot) (*Result, error) {
	if err := validateCart(req.Items); err != nil {
		return nil, err
	}
	customer, err := normalizeCustomer(req.Customer)
	if err != nil {
		return nil, err
	}

	method, ok := findPaymentMethod(snap.PaymentMethods, req.PaymentMethodID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, req.PaymentMethodID)
	}

	lines := make([]entity.OrderLine, 0, len(req.Items))
	var subtotal int64
	for i, cl := range req.Items {
		item, ok := findMenuItem(snap.Menu, cl.MenuID)
		if !ok {
			return nil, &UnknownMenuItemError{MenuID: cl.MenuID}
		}
		qty := cl.Qty
		if qty == 0 {
			qty = 1
		}
		if item.Price > 0 && int64(qty) > (math.MaxInt64-subtotal)/item.Price {
			return nil, fmt.Errorf("%w: line %d quantity %d is too large", ErrInvalidCart, i, qty)
		}
		lineTotal := item.Price * int64(qty)
		subtotal += lineTotal
		lines = append(lines, entity.OrderLine{MenuItem: item, Qty: qty, LineTotal: lineTotal})
	}

	// Unknown or inactive codes price as no promo.
	var discount int64
	var promoCode *string
	if req.PromoCode != "" {
		code := req.PromoCode
		promoCode = &code
		if promo, ok := findActivePromo(snap.Promos, code); ok {
			discount = promo.Discount(subtotal)
		}
	}

	if method.Fee > math.MaxInt64-(subtotal-discount) {
		return nil, fmt.Errorf("%w: order total is too large", ErrInvalidCart)
	}
	total := subtotal - discount + method.Fee
	createdAt := c.now()

	order := entity.Order{
		ID:              c.newID("ord"),
		CreatedAt:       createdAt,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		DeliveryAddress: customer.Address,
		Status:          entity.StatusAwaitingConfirmation,
		Items:           lines,
		PaymentMethod:   method,
		Subtotal:        subtotal,
		Discount:        discount,
		Fee:             method.Fee,
		Total:           total,
		PromoCode:       promoCode,
	}

	status := entity.PaymentStatusPending
	if method.Instant {
		status = entity.PaymentStatusPaid
	}
	payment := entity.Payment{
		ID:        c.newID("pay"),
		OrderID:   order.ID,
		Method:    method.Name,
		Amount:    total,
		Status:    status,
		Timestamp: createdAt,
	}

	return &Result{Order: order, Payment: payment}, nil
}

func validateCart(items []entity.CartLine) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrInvalidCart)
	}
	for i, cl := range items {
		if strings.TrimSpace(cl.MenuID) == "" {
			return fmt.Errorf("%w: line %d has no menu id", ErrInvalidCart, i)
		}
		if cl.Qty < 0 {
			return fmt.Errorf("%w: line %d has negative quantity %d", ErrInvalidCart, i, cl.Qty)
		}
	}
	return nil
}

func normalizeCustomer(c entity.Customer) (entity.Customer, error) {
	if c.Name == "" || c.Phone == "" {
		return entity.Customer{}, fmt.Errorf("%w: name and phone are required", ErrInvalidCustomer)
	}
	if c.Address == "" {
		c.Address = entity.PickupAddress
	}
	return c, nil
}

func findPaymentMethod(methods []entity.PaymentMethod, id string) (entity.PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return entity.PaymentMethod{}, false
}

func findMenuItem(menu []entity.MenuItem, id string) (entity.MenuItem, bool) {
	for _, m := range menu {
		if m.ID == id {
			return m, true
		}
	}
	return entity.MenuItem{}, false
}

func findActivePromo(promos []entity.Promo, code string) (entity.Promo, bool) {
	for _, p := range promos {
		if p.Code == code && p.Active {
			return p, true
		}
	}
	return entity.Promo{}, false
}
