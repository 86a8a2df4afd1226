package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

// MenuReader resolves menu item references.
type MenuReader interface {
	Get(ctx context.Context, id int) (model.MenuItem, error)
}

// BillLine is one priced line of an order.
type BillLine struct {
	MenuItemRef int             `json:"menuItemRef"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Bill is an order priced against the catalog as it is now.
type Bill struct {
	OrderID string          `json:"orderId"`
	Lines   []BillLine      `json:"lines"`
	Total   decimal.Decimal `json:"total"`
}

// PriceOrder prices every line of o at the current catalog price.  A line
// whose menu item has been removed makes the whole bill fail with the
// catalog's not-found error, wrapped with the offending reference.
func PriceOrder(ctx context.Context, o model.Order, menu MenuReader) (Bill, error) {
	bill := Bill{OrderID: o.ID, Lines: make([]BillLine, 0, len(o.LineItems)), Total: decimal.Zero}
	for _, li := range o.LineItems {
		item, err := menu.Get(ctx, li.MenuItemRef)
		if err != nil {
			return Bill{}, fmt.Errorf("order %s line for menu item %d: %w", o.ID, li.MenuItemRef, err)
		}
		sub := item.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		bill.Lines = append(bill.Lines, BillLine{
			MenuItemRef: li.MenuItemRef,
			Name:        item.Name,
			UnitPrice:   item.Price,
			Quantity:    li.Quantity,
			Subtotal:    sub,
		})
		bill.Total = bill.Total.Add(sub)
	}
	return bill, nil
}
