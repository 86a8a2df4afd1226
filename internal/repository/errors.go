// Package repository holds the in-memory stores that own tables, menu
// items, bookings and orders, plus the optional SQL archive.  The sentinel
// errors below are the whole failure taxonomy of the stores; handlers use
// errors.Is to translate them into HTTP status codes.
package repository

import "errors"

// ErrNotFound is returned when the referenced id or token does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned when a required field is missing, an
// enum value is unknown or a numeric field is out of range.  Handlers
// should translate this into an HTTP 400 response.
var ErrInvalidArgument = errors.New("invalid argument")
