package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-ops/internal/model"
	"github.com/iliyamo/restaurant-ops/internal/utils"
)

// BookingRepo is the reservation ledger.  Bookings are append-only: once
// accepted they are never modified or removed.  No capacity check is made
// against the table registry; table availability is advisory only.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings []model.Booking
	byID     map[string]int
	newID    utils.IDFunc
	now      func() time.Time
}

// NewBookingRepo returns an empty ledger.  A nil newID defaults to random
// UUIDs and a nil now defaults to time.Now.
func NewBookingRepo(newID utils.IDFunc, now func() time.Time) *BookingRepo {
	if newID == nil {
		newID = utils.NewID
	}
	if now == nil {
		now = time.Now
	}
	return &BookingRepo{
		byID:  make(map[string]int),
		newID: newID,
		now:   now,
	}
}

// List returns every booking in the order it was accepted.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

// Get returns the booking with the given id.
func (r *BookingRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return model.Booking{}, notFound("booking %q", id)
	}
	return r.bookings[i], nil
}

// Create validates req and records a confirmed booking with a fresh id
// and the current time.  A request missing name, phone, date, time or
// guest count fails with ErrInvalidArgument and nothing is recorded.
func (r *BookingRepo) Create(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := checkStruct(req); err != nil {
		return model.Booking{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	if _, dup := r.byID[id]; dup {
		return model.Booking{}, invalid("booking id %q already issued", id)
	}
	b := model.Booking{
		ID:              id,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Date:            req.Date,
		Time:            req.Time,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
		Status:          model.BookingConfirmed,
		CreatedAt:       r.now().UTC(),
	}
	r.bookings = append(r.bookings, b)
	r.byID[b.ID] = len(r.bookings) - 1
	return b, nil
}

