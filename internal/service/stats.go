// Package service holds the logic that reads across stores (statistics and
// order bills) and the publisher that announces domain events on RabbitMQ.
package service

import (
	"context"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

// TableLister is the read side of the table registry.
type TableLister interface {
	List(ctx context.Context) ([]model.Table, error)
}

// BookingLister is the read side of the reservation ledger.
type BookingLister interface {
	List(ctx context.Context) ([]model.Booking, error)
}

// OrderLister is the read side of the order ledger.
type OrderLister interface {
	List(ctx context.Context) ([]model.Order, error)
}

// ComputeStats counts tables by status, bookings and orders.  It is a pure
// function of its inputs.
func ComputeStats(tables []model.Table, bookings []model.Booking, orders []model.Order) model.StatsSnapshot {
	s := model.StatsSnapshot{
		TotalTables:   len(tables),
		TotalBookings: len(bookings),
		TotalOrders:   len(orders),
	}
	for _, t := range tables {
		switch t.Status {
		case model.TableAvailable:
			s.AvailableTables++
		case model.TableOccupied:
			s.OccupiedTables++
		case model.TableReserved:
			s.ReservedTables++
		}
	}
	for _, o := range orders {
		if o.Status == model.OrderPending {
			s.PendingOrders++
		}
	}
	return s
}

// StatsService recomputes a snapshot from the live stores on every call.
// Stores are read one after another without a shared lock, so a snapshot
// may mix states from slightly different instants; each count on its own
// is exact.
type StatsService struct {
	Tables   TableLister
	Bookings BookingLister
	Orders   OrderLister
}

// NewStatsService panics if any store is nil.
func NewStatsService(tables TableLister, bookings BookingLister, orders OrderLister) *StatsService {
	if tables == nil || bookings == nil || orders == nil {
		panic("nil store passed to NewStatsService")
	}
	return &StatsService{Tables: tables, Bookings: bookings, Orders: orders}
}

// Snapshot reads the three stores and returns fresh counts.
func (s *StatsService) Snapshot(ctx context.Context) (model.StatsSnapshot, error) {
	tables, err := s.Tables.List(ctx)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	bookings, err := s.Bookings.List(ctx)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	return ComputeStats(tables, bookings, orders), nil
}
