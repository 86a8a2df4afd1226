package model

// StatsSnapshot is a point-in-time count over tables, bookings and
// orders.  It is computed on demand and never stored.
type StatsSnapshot struct {
	TotalTables     int `json:"totalTables"`
	AvailableTables int `json:"availableTables"`
	OccupiedTables  int `json:"occupiedTables"`
	ReservedTables  int `json:"reservedTables"`
	TotalBookings   int `json:"totalBookings"`
	TotalOrders     int `json:"totalOrders"`
	PendingOrders   int `json:"pendingOrders"`
}
