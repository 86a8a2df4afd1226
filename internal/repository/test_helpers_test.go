package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-ops/internal/model"
)

var fixedNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// counterIDs returns an id generator producing prefix-1, prefix-2, ...
func counterIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func seedTables() []model.Table {
	return []model.Table{
		{ID: 1, Number: 1, Capacity: 4, Status: model.TableAvailable, QRToken: "table-1"},
		{ID: 2, Number: 2, Capacity: 6, Status: model.TableOccupied, QRToken: "table-2"},
		{ID: 3, Number: 3, Capacity: 2, Status: model.TableAvailable, QRToken: "table-3"},
		{ID: 4, Number: 4, Capacity: 8, Status: model.TableReserved, QRToken: "table-4"},
	}
}

func seedMenu() []model.MenuItem {
	return []model.MenuItem{
		{ID: 1, Name: "Margherita Pizza", Price: decimal.NewFromInt(45), Category: "Pizza"},
		{ID: 2, Name: "Spaghetti Carbonara", Price: decimal.NewFromInt(35), Category: "Pasta"},
		{ID: 3, Name: "Caesar Salad", Price: decimal.RequireFromString("25.50"), Category: "Salad"},
	}
}

func newTestTableRepo(t *testing.T, seed []model.Table) *TableRepo {
	t.Helper()
	r, err := NewTableRepo(seed)
	if err != nil {
		t.Fatalf("NewTableRepo() failed: %v", err)
	}
	return r
}

func newTestMenuRepo(t *testing.T) *MenuRepo {
	t.Helper()
	r, err := NewMenuRepo(seedMenu())
	if err != nil {
		t.Fatalf("NewMenuRepo() failed: %v", err)
	}
	return r
}

func validBooking() model.BookingRequest {
	return model.BookingRequest{
		CustomerName:  "Ayse Yilmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "+90 555 000 0000",
		Date:          "2025-03-20",
		Time:          "19:30",
		GuestCount:    4,
	}
}

func validOrder() model.OrderRequest {
	return model.OrderRequest{
		TableRef:  model.TableRef{QRToken: "table-3"},
		LineItems: []model.LineItem{{MenuItemRef: 1, Quantity: 2}, {MenuItemRef: 3, Quantity: 1}},
	}
}
