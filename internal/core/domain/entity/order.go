package entity

import "time"

type OrderStatus string

const (
	StatusAwaitingConfirmation OrderStatus = "Menunggu Konfirmasi"
	StatusDone                 OrderStatus = "Selesai"
)

// PickupAddress is stored when the customer gives no delivery address.
const PickupAddress = "Ambil di tempat"

type CartLine struct {
	MenuID string
	Qty    int
}

type Customer struct {
	Name    string
	Phone   string
	Address string
}

// OrderLine is a cart line resolved against the catalog. The menu item is a
// copy taken at checkout time.
type OrderLine struct {
	MenuItem
	Qty       int   `json:"qty"`
	LineTotal int64 `json:"lineTotal"`
}

type Order struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"createdAt"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Status          OrderStatus   `json:"status"`
	Items           []OrderLine   `json:"items"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Subtotal        int64         `json:"subtotal"`
	Discount        int64         `json:"discount"`
	Fee             int64         `json:"fee"`
	Total           int64         `json:"total"`
	PromoCode       *string       `json:"promoCode"`
}

func (o Order) Pending() bool {
	return o.Status != StatusDone
}
