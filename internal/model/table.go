package model

// TableStatus is the availability state of a dining table.  The set of
// values is closed; anything else is rejected by the table registry.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// TableStatuses lists every valid TableStatus in display order.
var TableStatuses = []TableStatus{TableAvailable, TableOccupied, TableReserved}

// Valid reports whether s is one of the known table statuses.
func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

// Table represents a physical seating unit in the restaurant.
//
// Fields:
//
//	ID       – identifier assigned at creation, never changes.
//	Number   – label shown to guests and staff.
//	Capacity – number of seats, always greater than zero.
//	Status   – current availability; the only mutable field.
//	QRToken  – opaque token printed on the table's QR code.  Unique
//	           across the registry and never changes.
type Table struct {
	ID       int         `json:"id" yaml:"id"`
	Number   int         `json:"number" yaml:"number"`
	Capacity int         `json:"capacity" yaml:"capacity"`
	Status   TableStatus `json:"status" yaml:"status"`
	QRToken  string      `json:"qrToken" yaml:"qrToken"`
}

// NewTable carries the fields accepted by the administrative add
// operation.  QRToken and Status are optional.
type NewTable struct {
	Number   int         `json:"number" validate:"gt=0"`
	Capacity int         `json:"capacity" validate:"gt=0"`
	Status   TableStatus `json:"status"`
	QRToken  string      `json:"qrToken"`
}
