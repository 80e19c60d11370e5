// Package dashboard aggregates the admin overview from the store contents.
package dashboard

import "github.com/jcmexdev/warung-orders/internal/core/domain/entity"

// RecentLimit caps the orders and payments listed on the dashboard.
const RecentLimit = 10

type KPI struct {
	TotalRevenue   int64 `json:"totalRevenue"`
	TotalOrders    int   `json:"totalOrders"`
	TotalCustomers int   `json:"totalCustomers"`
	PendingOrders  int   `json:"pendingOrders"`
}

type Summary struct {
	KPI       KPI                    `json:"kpi"`
	Orders    []entity.Order         `json:"orders"`
	Payments  []entity.Payment       `json:"payments"`
	Inventory []entity.InventoryItem `json:"inventory"`
	Promos    []entity.Promo         `json:"promos"`
}

// Summarize expects orders and payments newest first.
func Summarize(orders []entity.Order, payments []entity.Payment, inventory []entity.InventoryItem, promos []entity.Promo) Summary {
	var kpi KPI
	customers := make(map[string]struct{})
	for _, o := range orders {
		kpi.TotalRevenue += o.Total
		if o.Pending() {
			kpi.PendingOrders++
		}
		customers[o.CustomerPhone] = struct{}{}
	}
	kpi.TotalOrders = len(orders)
	kpi.TotalCustomers = len(customers)

	return Summary{
		KPI:       kpi,
		Orders:    head(orders, RecentLimit),
		Payments:  head(payments, RecentLimit),
		Inventory: nonNil(inventory),
		Promos:    nonNil(promos),
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	return nonNil(s)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
