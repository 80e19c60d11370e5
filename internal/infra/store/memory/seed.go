package memory

import "github.com/jcmexdev/warung-orders/internal/core/domain/entity"

func seedMenu() []entity.MenuItem {
	return []entity.MenuItem{
		{ID: "m1", Name: "Nasi Uduk Betawi", Category: "Makanan", Price: 22000, Stock: 40, SpicyLevel: 1, Featured: true},
		{ID: "m2", Name: "Soto Betawi", Category: "Makanan", Price: 35000, Stock: 25, SpicyLevel: 2, Featured: true},
		{ID: "m3", Name: "Gabus Pucung", Category: "Makanan", Price: 38000, Stock: 15, SpicyLevel: 1, Featured: false},
		{ID: "m4", Name: "Kerak Telor", Category: "Camilan", Price: 25000, Stock: 30, SpicyLevel: 1, Featured: true},
		{ID: "m5", Name: "Bir Pletok", Category: "Minuman", Price: 15000, Stock: 60, SpicyLevel: 0, Featured: false},
		{ID: "m6", Name: "Es Selendang Mayang", Category: "Minuman", Price: 18000, Stock: 45, SpicyLevel: 0, Featured: true},
	}
}

func seedPromos() []entity.Promo {
	return []entity.Promo{
		{Code: "BETAWI10", DiscountPercent: 10, Active: true},
		{Code: "ONDEL20", DiscountPercent: 20, Active: true},
	}
}

func seedPaymentMethods() []entity.PaymentMethod {
	return []entity.PaymentMethod{
		{ID: "qris", Name: "QRIS", Fee: 0, Instant: true},
		{ID: "gopay", Name: "GoPay", Fee: 1500, Instant: true},
		{ID: "ovo", Name: "OVO", Fee: 1500, Instant: true},
		{ID: "dana", Name: "DANA", Fee: 1500, Instant: true},
		{ID: "va_bca", Name: "Virtual Account BCA", Fee: 2500, Instant: false},
		{ID: "va_bni", Name: "Virtual Account BNI", Fee: 2500, Instant: false},
		{ID: "cod", Name: "Cash on Delivery", Fee: 0, Instant: false},
		{ID: "card", Name: "Kartu Kredit/Debit", Fee: 3500, Instant: true},
	}
}

func seedInventory() []entity.InventoryItem {
	return []entity.InventoryItem{
		{Item: "Beras pandan wangi", Unit: "kg", Remaining: 120},
		{Item: "Daging sapi", Unit: "kg", Remaining: 42},
		{Item: "Telor bebek", Unit: "butir", Remaining: 300},
	}
}
