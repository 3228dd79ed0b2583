package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// OpenForApplications reports whether vendors can browse the event.
func (s EventStatus) OpenForApplications() bool {
	return s == EventStatusUpcoming || s == EventStatusOngoing
}

// Event is the read-only view of a catalog event, including the payment
// configuration vendors settle against.
type Event struct {
	ID          int64
	Name        string
	Description string
	EventDate   time.Time
	Location    string
	Venue       string
	VendorFee   decimal.Decimal
	Status      EventStatus

	DefaultCurrency  string
	CurrencyOptions  string
	MpesaNumber      string
	PaypalAccount    string
	ZelleAccount     string
	CardInstructions string
}

// AvailableEvent is an event annotated for a particular vendor.
type AvailableEvent struct {
	Event
	HasApplied bool
}
