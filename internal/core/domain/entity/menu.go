package entity

type MenuItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	Stock      int    `json:"stock"`
	SpicyLevel int    `json:"spicyLevel"`
	Featured   bool   `json:"featured"`
}

// MenuItemPatch carries the fields of a partial menu update. Nil fields are
// left untouched.
type MenuItemPatch struct {
	Name       *string
	Category   *string
	Price      *int64
	Stock      *int
	SpicyLevel *int
	Featured   *bool
}

func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Stock != nil {
		item.Stock = *p.Stock
	}
	if p.SpicyLevel != nil {
		item.SpicyLevel = *p.SpicyLevel
	}
	if p.Featured != nil {
		item.Featured = *p.Featured
	}
	return item
}

type InventoryItem struct {
	Item      string `json:"item"`
	Unit      string `json:"unit"`
	Remaining int    `json:"remaining"`
}
