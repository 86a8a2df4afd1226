package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/restaurant-ops/internal/model"
	q "github.com/iliyamo/restaurant-ops/internal/queue"
)

// Publisher announces domain events.  Handlers call it after a store
// operation has succeeded; a publish failure never undoes the operation.
type Publisher interface {
	BookingConfirmed(ctx context.Context, b model.Booking) error
	OrderPlaced(ctx context.Context, o model.Order) error
	OrderStatusChanged(ctx context.Context, o model.Order, at time.Time) error
}

// NopPublisher discards every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) BookingConfirmed(context.Context, model.Booking) error { return nil }
func (NopPublisher) OrderPlaced(context.Context, model.Order) error       { return nil }
func (NopPublisher) OrderStatusChanged(context.Context, model.Order, time.Time) error {
	return nil
}

// dialTimeout bounds how long a request waits for an unreachable broker.
const dialTimeout = 3 * time.Second

// RabbitPublisher publishes events to the restaurant.events queue.  Each
// publish dials the broker, declares the queue and sends one persistent
// message; errors are logged and returned so the caller can ignore them.
type RabbitPublisher struct {
	URL string
}

// NewRabbitPublisher returns a publisher for the broker at url.
func NewRabbitPublisher(url string) *RabbitPublisher { return &RabbitPublisher{URL: url} }

func (p *RabbitPublisher) BookingConfirmed(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, q.KindBookingConfirmed, BookingConfirmedEvent(b))
}

func (p *RabbitPublisher) OrderPlaced(ctx context.Context, o model.Order) error {
	return p.publish(ctx, q.KindOrderPlaced, OrderPlacedEvent(o))
}

func (p *RabbitPublisher) OrderStatusChanged(ctx context.Context, o model.Order, at time.Time) error {
	return p.publish(ctx, q.KindOrderStatusChanged, OrderStatusChangedEvent(o, at))
}

// BookingConfirmedEvent converts a booking into its event payload.
func BookingConfirmedEvent(b model.Booking) q.BookingConfirmedEvent {
	return q.BookingConfirmedEvent{
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		Date:         b.Date,
		Time:         b.Time,
		GuestCount:   b.GuestCount,
		ConfirmedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// OrderPlacedEvent converts a new order into its event payload.
func OrderPlacedEvent(o model.Order) q.OrderPlacedEvent {
	n := 0
	for _, li := range o.LineItems {
		n += li.Quantity
	}
	return q.OrderPlacedEvent{
		OrderID:    o.ID,
		TableID:    o.TableRef.ID,
		TableToken: o.TableRef.QRToken,
		ItemCount:  n,
		PlacedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// OrderStatusChangedEvent converts a status change into its event payload.
func OrderStatusChangedEvent(o model.Order, at time.Time) q.OrderStatusChangedEvent {
	return q.OrderStatusChangedEvent{
		OrderID:   o.ID,
		Status:    string(o.Status),
		ChangedAt: at.UTC().Format(time.RFC3339),
	}
}

func (p *RabbitPublisher) publish(ctx context.Context, kind string, event any) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.EventsQueue, // name
		true,          // durable
		false,         // autoDelete
		false,         // exclusive
		false,         // noWait
		nil,           // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		Type:         kind,
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",            // default exchange
		q.EventsQueue, // routing key = queue name
		false,         // mandatory
		false,         // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
