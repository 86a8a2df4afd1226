package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

func newTestArchive(t *testing.T) *ArchiveRepo {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewArchiveRepo(db)
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

// getOrder reads an archived order back.
func (r *ArchiveRepo) getOrder(ctx context.Context, id string) (model.Order, error) {
	const q = `SELECT id, table_id, table_token, line_items, status, created_at FROM order_archive WHERE id = ?`
	var (
		o       model.Order
		items   string
		status  string
		created string
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.TableRef.ID, &o.TableRef.QRToken, &items, &status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, notFound("archived order %q", id)
	}
	if err != nil {
		return model.Order{}, err
	}
	if err := json.Unmarshal([]byte(items), &o.LineItems); err != nil {
		return model.Order{}, fmt.Errorf("decode line items: %w", err)
	}
	o.Status = model.OrderStatus(status)
	if o.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return model.Order{}, fmt.Errorf("decode created_at: %w", err)
	}
	return o, nil
}

// countBookings returns how many bookings have been archived.
func (r *ArchiveRepo) countBookings(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking_archive`).Scan(&n)
	return n, err
}

func TestArchiveRepo_EnsureSchemaIdempotent(t *testing.T) {
	r := newTestArchive(t)
	assert.NoError(t, r.EnsureSchema(context.Background()))
}

func TestArchiveRepo_SaveBooking(t *testing.T) {
	r := newTestArchive(t)
	ctx := context.Background()
	bookings := NewBookingRepo(counterIDs("bk"), fixedClock)
	b, err := bookings.Create(ctx, validBooking())
	require.NoError(t, err)

	require.NoError(t, r.SaveBooking(ctx, b))
	n, err := r.countBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// bookings are immutable, a second insert is rejected
	assert.Error(t, r.SaveBooking(ctx, b))
}

func TestArchiveRepo_OrderRoundTrip(t *testing.T) {
	r := newTestArchive(t)
	ctx := context.Background()
	orders := NewOrderRepo(counterIDs("ord"), fixedClock)
	o, err := orders.Create(ctx, validOrder())
	require.NoError(t, err)

	require.NoError(t, r.SaveOrder(ctx, o))
	require.NoError(t, r.UpdateOrderStatus(ctx, o.ID, model.OrderReady, fixedNow))

	got, err := r.getOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderReady, got.Status)
	assert.Equal(t, o.LineItems, got.LineItems)
	assert.Equal(t, o.TableRef, got.TableRef)
	assert.True(t, o.CreatedAt.Equal(got.CreatedAt))
}

func TestArchiveRepo_UnknownOrder(t *testing.T) {
	r := newTestArchive(t)
	ctx := context.Background()

	err := r.UpdateOrderStatus(ctx, "ghost", model.OrderServed, fixedNow)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.getOrder(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
