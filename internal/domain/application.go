package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Mutable reports whether the vendor may still edit or withdraw.
func (s ApplicationStatus) Mutable() bool {
	return s == ApplicationStatusPending
}

// Application is a vendor's request to take part in an event. At most one
// exists per (VendorID, EventID), whatever its status.
type Application struct {
	ID                int64
	VendorID          int64
	EventID           int64
	ProductService    string
	BoothRequirements string
	AdditionalNotes   string
	Status            ApplicationStatus
	AdminNotes        string
	ReviewedAt        *time.Time
	AppliedAt         time.Time
	UpdatedAt         time.Time

	// Joined from the event in listings only.
	EventName string
	EventDate time.Time
	VendorFee decimal.Decimal
}
