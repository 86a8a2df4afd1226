package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/utils"
)

// TableRepo is the table registry.  It keeps tables in insertion order and
// indexes them by id and by QR token.  Status is the only field that can
// change after a table is added; tables are never removed.
type TableRepo struct {
	mu      sync.RWMutex
	tables  []model.Table
	byID    map[int]int    // id -> index into tables
	byToken map[string]int // qr token -> index into tables
	seq     *utils.Sequence
}

// NewTableRepo builds a registry preloaded with seed.  Seed tables keep
// their ids; tables added later get ids above the largest seeded one.  A
// seed with duplicate ids or tokens, a non-positive capacity or an unknown
// status is rejected.
func NewTableRepo(seed []model.Table) (*TableRepo, error) {
	r := &TableRepo{
		byID:    make(map[int]int, len(seed)),
		byToken: make(map[string]int, len(seed)),
		seq:     utils.NewSequence(0),
	}
	for _, t := range seed {
		if t.ID <= 0 {
			return nil, invalid("seed table id must be positive, got %d", t.ID)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, invalid("duplicate seed table id %d", t.ID)
		}
		if t.Capacity <= 0 {
			return nil, invalid("table %d: capacity must be greater than 0", t.ID)
		}
		if t.Status == "" {
			t.Status = model.TableAvailable
		}
		if !t.Status.Valid() {
			return nil, invalid("table %d: unknown status %q", t.ID, t.Status)
		}
		if t.QRToken == "" {
			t.QRToken = defaultQRToken(t.ID)
		}
		if _, dup := r.byToken[t.QRToken]; dup {
			return nil, invalid("duplicate qr token %q", t.QRToken)
		}
		r.insert(t)
		r.seq.Observe(t.ID)
	}
	return r, nil
}

func defaultQRToken(id int) string { return "table-" + strconv.Itoa(id) }

// insert appends t and indexes it.  Callers hold the write lock.
func (r *TableRepo) insert(t model.Table) {
	r.tables = append(r.tables, t)
	idx := len(r.tables) - 1
	r.byID[t.ID] = idx
	r.byToken[t.QRToken] = idx
}

// List returns a copy of every table in insertion order.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Table, len(r.tables))
	copy(out, r.tables)
	return out, nil
}

// Get returns the table with the given id.
func (r *TableRepo) Get(ctx context.Context, id int) (model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return model.Table{}, notFound("table %d", id)
	}
	return r.tables[idx], nil
}

// GetByToken resolves a QR token to its table.
func (r *TableRepo) GetByToken(ctx context.Context, token string) (model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byToken[token]
	if !ok {
		return model.Table{}, notFound("table with qr token %q", token)
	}
	return r.tables[idx], nil
}

// SetStatus overwrites the status of table id and returns the updated
// table.  Concurrent writers to the same table race last-writer-wins.
func (r *TableRepo) SetStatus(ctx context.Context, id int, status model.TableStatus) (model.Table, error) {
	if !status.Valid() {
		return model.Table{}, invalid("unknown table status %q", status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return model.Table{}, notFound("table %d", id)
	}
	r.tables[idx].Status = status
	return r.tables[idx], nil
}

// Add registers a new table.  The id is assigned by the registry; an
// empty token defaults to "table-<id>" and an empty status to available.
func (r *TableRepo) Add(ctx context.Context, in model.NewTable) (model.Table, error) {
	if err := checkStruct(in); err != nil {
		return model.Table{}, err
	}
	status := in.Status
	if status == "" {
		status = model.TableAvailable
	}
	if !status.Valid() {
		return model.Table{}, invalid("unknown table status %q", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// the sequence only advances under r.mu, so the next id is known here
	id := r.seq.Last() + 1
	token := in.QRToken
	if token == "" {
		token = defaultQRToken(id)
	}
	if _, dup := r.byToken[token]; dup {
		return model.Table{}, invalid("qr token %q already in use", token)
	}
	r.seq.Next()
	t := model.Table{
		ID:       id,
		Number:   in.Number,
		Capacity: in.Capacity,
		Status:   status,
		QRToken:  token,
	}
	r.insert(t)
	return t, nil
}
