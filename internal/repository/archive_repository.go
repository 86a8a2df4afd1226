package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

// ArchiveRepo copies accepted bookings and orders into a SQL database so
// they can be inspected after the process exits.  The in-memory stores
// stay authoritative; the archive is written after the fact and gives no
// durability guarantee.  Statements use "?" placeholders and portable
// column types so the same code runs against MySQL and SQLite.
type ArchiveRepo struct {
	db *sql.DB
}

// NewArchiveRepo returns an ArchiveRepo bound to the given database.
func NewArchiveRepo(db *sql.DB) *ArchiveRepo { return &ArchiveRepo{db: db} }

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS booking_archive (
		id               VARCHAR(64) NOT NULL PRIMARY KEY,
		customer_name    VARCHAR(255) NOT NULL,
		customer_email   VARCHAR(255) NOT NULL,
		customer_phone   VARCHAR(64) NOT NULL,
		visit_date       VARCHAR(10) NOT NULL,
		visit_time       VARCHAR(5) NOT NULL,
		guest_count      INT NOT NULL,
		special_requests TEXT,
		status           VARCHAR(32) NOT NULL,
		created_at       VARCHAR(40) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_archive (
		id          VARCHAR(64) NOT NULL PRIMARY KEY,
		table_id    INT NOT NULL,
		table_token VARCHAR(255) NOT NULL,
		line_items  TEXT NOT NULL,
		status      VARCHAR(32) NOT NULL,
		created_at  VARCHAR(40) NOT NULL,
		updated_at  VARCHAR(40) NOT NULL
	)`,
}

// EnsureSchema creates the archive tables when they do not exist.
func (r *ArchiveRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range archiveSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("archive schema: %w", err)
		}
	}
	return nil
}

func archiveTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// SaveBooking inserts b.  Bookings are immutable, so a second save of the
// same id is a primary key violation and is returned as an error.
func (r *ArchiveRepo) SaveBooking(ctx context.Context, b model.Booking) error {
	const q = `INSERT INTO booking_archive
		(id, customer_name, customer_email, customer_phone, visit_date, visit_time, guest_count, special_requests, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Date, b.Time,
		b.GuestCount, b.SpecialRequests, string(b.Status), archiveTime(b.CreatedAt))
	return err
}

// SaveOrder inserts o with its line items encoded as JSON.
func (r *ArchiveRepo) SaveOrder(ctx context.Context, o model.Order) error {
	items, err := json.Marshal(o.LineItems)
	if err != nil {
		return err
	}
	const q = `INSERT INTO order_archive
		(id, table_id, table_token, line_items, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	ts := archiveTime(o.CreatedAt)
	_, err = r.db.ExecContext(ctx, q,
		o.ID, o.TableRef.ID, o.TableRef.QRToken, string(items), string(o.Status), ts, ts)
	return err
}

// UpdateOrderStatus records a status change.  It returns ErrNotFound when
// the order was never archived (for example because archiving was enabled
// after the order was placed).
func (r *ArchiveRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, at time.Time) error {
	const q = `UPDATE order_archive SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, string(status), archiveTime(at), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("archived order %q", id)
	}
	return nil
}
