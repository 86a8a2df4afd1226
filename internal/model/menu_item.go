package model

import "github.com/shopspring/decimal"

// MenuItem is a single dish or drink offered by the restaurant.  Price is
// stored as an exact decimal so currency amounts never pick up binary
// floating point error.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageRef    string          `json:"imageRef"`
}

// NewMenuItem is the payload for adding an item to the catalog.
type NewMenuItem struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageRef    string          `json:"imageRef"`
}

// MenuItemPatch is a partial update.  Nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageRef    *string          `json:"imageRef,omitempty"`
}

// Apply returns a copy of item with every non-nil patch field merged in.
func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.ImageRef != nil {
		item.ImageRef = *p.ImageRef
	}
	return item
}
