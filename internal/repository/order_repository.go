package repository

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/utils"
)

// OrderRepo is the order ledger.  Orders are never deleted; only their
// status changes.  Table and menu references are stored as given and are
// not checked against the other stores.
type OrderRepo struct {
	mu     sync.RWMutex
	orders []model.Order
	byID   map[string]int
	newID  utils.IDFunc
	now    func() time.Time
}

// NewOrderRepo returns an empty ledger.  A nil newID defaults to random
// UUIDs and a nil now defaults to time.Now.
func NewOrderRepo(newID utils.IDFunc, now func() time.Time) *OrderRepo {
	if newID == nil {
		newID = utils.NewID
	}
	if now == nil {
		now = time.Now
	}
	return &OrderRepo{
		byID:  make(map[string]int),
		newID: newID,
		now:   now,
	}
}

func cloneOrder(o model.Order) model.Order {
	items := make([]model.LineItem, len(o.LineItems))
	copy(items, o.LineItems)
	o.LineItems = items
	return o
}

// List returns every order in creation order.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = cloneOrder(o)
	}
	return out, nil
}

// Get returns the order with the given id.
func (r *OrderRepo) Get(ctx context.Context, id string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return model.Order{}, notFound("order %q", id)
	}
	return cloneOrder(r.orders[i]), nil
}

// Create records a pending order for req.  The request must reference a
// table (by id or token) and carry at least one line item with a positive
// menu item reference and quantity.
func (r *OrderRepo) Create(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	if req.TableRef.IsZero() {
		return model.Order{}, invalid("tableRef requires an id or a qrToken")
	}
	if req.TableRef.ID < 0 {
		return model.Order{}, invalid("tableRef.id must not be negative")
	}
	if err := checkStruct(req); err != nil {
		return model.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	if _, dup := r.byID[id]; dup {
		return model.Order{}, invalid("order id %q already issued", id)
	}
	o := cloneOrder(model.Order{
		ID:        id,
		TableRef:  req.TableRef,
		LineItems: req.LineItems,
		Status:    model.OrderPending,
		CreatedAt: r.now().UTC(),
	})
	r.orders = append(r.orders, o)
	r.byID[o.ID] = len(r.orders) - 1
	return cloneOrder(o), nil
}

// SetStatus moves order id to status.  Unknown statuses are rejected;
// transitions between known statuses are not restricted.  Setting the
// current status again is a no-op that still returns the order.
func (r *OrderRepo) SetStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, invalid("unknown order status %q", status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return model.Order{}, notFound("order %q", id)
	}
	r.orders[i].Status = status
	return cloneOrder(r.orders[i]), nil
}
