package model

import "time"

// OrderStatus tracks an order through the kitchen.  Any status may follow
// any other; only membership in the set is enforced.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid OrderStatus.
var OrderStatuses = []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}

// TableRef points at a table by id or by QR token.  It is a weak
// reference: the table may not exist.
type TableRef struct {
	ID      int    `json:"id,omitempty"`
	QRToken string `json:"qrToken,omitempty"`
}

// IsZero reports whether neither id nor token is set.
func (r TableRef) IsZero() bool { return r.ID <= 0 && r.QRToken == "" }

// LineItem is one menu selection in an order.  MenuItemRef is a weak
// reference into the catalog.
type LineItem struct {
	MenuItemRef int `json:"menuItemRef" validate:"gt=0"`
	Quantity    int `json:"quantity" validate:"gte=1"`
}

// Order is a set of menu selections placed from a table.  The order total
// is not stored; it is derived from the current catalog prices.
type Order struct {
	ID        string      `json:"id"`
	TableRef  TableRef    `json:"tableRef"`
	LineItems []LineItem  `json:"lineItems"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderRequest is the cart submitted by a customer.
type OrderRequest struct {
	TableRef  TableRef   `json:"tableRef"`
	LineItems []LineItem `json:"lineItems" validate:"required,min=1,dive"`
}
