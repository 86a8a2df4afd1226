package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/utils"
)

// MenuRepo is the menu catalog.  Items keep their insertion order.  New
// ids come from a monotonic sequence, so an id freed by Remove is never
// handed out again.
type MenuRepo struct {
	mu    sync.RWMutex
	items []model.MenuItem
	seq   *utils.Sequence
}

// NewMenuRepo builds a catalog preloaded with seed.  Seeded items keep
// their ids and the sequence continues after the largest of them.
func NewMenuRepo(seed []model.MenuItem) (*MenuRepo, error) {
	r := &MenuRepo{seq: utils.NewSequence(0)}
	seen := make(map[int]bool, len(seed))
	for _, it := range seed {
		if it.ID <= 0 {
			return nil, invalid("seed menu item id must be positive, got %d", it.ID)
		}
		if seen[it.ID] {
			return nil, invalid("duplicate seed menu item id %d", it.ID)
		}
		if err := checkMenuFields(it); err != nil {
			return nil, err
		}
		seen[it.ID] = true
		r.items = append(r.items, it)
		r.seq.Observe(it.ID)
	}
	return r, nil
}

func checkMenuFields(it model.MenuItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return invalid("name is required")
	}
	if it.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

// indexOf returns the slice index of id or -1.  Callers hold the lock.
func (r *MenuRepo) indexOf(id int) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the catalog.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Get returns the item with the given id.
func (r *MenuRepo) Get(ctx context.Context, id int) (model.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.MenuItem{}, notFound("menu item %d", id)
	}
	return r.items[i], nil
}

// Add appends a new item with a freshly assigned id.  Identical payloads
// produce distinct items.
func (r *MenuRepo) Add(ctx context.Context, in model.NewMenuItem) (model.MenuItem, error) {
	if err := checkStruct(in); err != nil {
		return model.MenuItem{}, err
	}
	it := model.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageRef:    in.ImageRef,
	}
	if err := checkMenuFields(it); err != nil {
		return model.MenuItem{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	it.ID = r.seq.Next()
	r.items = append(r.items, it)
	return it, nil
}

// Update merges the non-nil fields of patch into item id.  The merged
// item is validated before anything is written.
func (r *MenuRepo) Update(ctx context.Context, id int, patch model.MenuItemPatch) (model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return model.MenuItem{}, notFound("menu item %d", id)
	}
	merged := patch.Apply(r.items[i])
	if err := checkMenuFields(merged); err != nil {
		return model.MenuItem{}, err
	}
	r.items[i] = merged
	return merged, nil
}

// Remove deletes item id.  Orders that reference the item are not
// checked; their references dangle from here on.
func (r *MenuRepo) Remove(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return notFound("menu item %d", id)
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}
