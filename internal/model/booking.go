package model

import "time"

// BookingStatus is the state of a reservation.  Bookings are confirmed on
// acceptance and no further transition is modelled.
type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// Booking represents a reservation request accepted by the restaurant.
// Bookings are immutable once created and are never deleted.
//
// Fields:
//
//	ID              – random UUID assigned on acceptance.
//	Date            – calendar day of the visit (YYYY-MM-DD).
//	Time            – time of day of the visit (HH:MM, 24h).
//	GuestCount      – party size, greater than zero.
//	SpecialRequests – free text, optional.
//	CreatedAt       – UTC time the booking was accepted.
type Booking struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	GuestCount      int           `json:"guestCount"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// BookingRequest is the caller-supplied part of a booking.
type BookingRequest struct {
	CustomerName    string `json:"customerName" validate:"required"`
	CustomerEmail   string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string `json:"customerPhone" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	GuestCount      int    `json:"guestCount" validate:"required,gt=0"`
	SpecialRequests string `json:"specialRequests"`
}
