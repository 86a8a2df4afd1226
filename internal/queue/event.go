package queue

// EventsQueue is the durable queue every domain event is published to.
// The AMQP Type property carries the event kind.
const EventsQueue = "restaurant.events"

// Event kinds, used as the AMQP message type.
const (
	KindBookingConfirmed   = "booking.confirmed"
	KindOrderPlaced        = "order.placed"
	KindOrderStatusChanged = "order.status_changed"
)

// BookingConfirmedEvent is published when a booking is accepted.
type BookingConfirmedEvent struct {
	BookingID    string `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	GuestCount   int    `json:"guest_count"`
	ConfirmedAt  string `json:"confirmed_at"`
}

// OrderPlacedEvent is published when a customer submits a cart.
type OrderPlacedEvent struct {
	OrderID    string `json:"order_id"`
	TableID    int    `json:"table_id,omitempty"`
	TableToken string `json:"table_token,omitempty"`
	ItemCount  int    `json:"item_count"`
	PlacedAt   string `json:"placed_at"`
}

// OrderStatusChangedEvent is published after staff move an order to a new
// status.
type OrderStatusChangedEvent struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	ChangedAt string `json:"changed_at"`
}
