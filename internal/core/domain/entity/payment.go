package entity

import "time"

type PaymentMethod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Fee     int64  `json:"fee"`
	Instant bool   `json:"instant"`
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)

type Payment struct {
	ID        string        `json:"id"`
	OrderID   string        `json:"orderId"`
	Method    string        `json:"method"`
	Amount    int64         `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}
