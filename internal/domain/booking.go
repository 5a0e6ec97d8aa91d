package domain

import (
	"time"

	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// BookingStatus represents the status of a court booking
type BookingStatus string

const (
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByAdmin BookingStatus = "cancelled_by_admin"
)

// Role is the authenticated requester's role, established by the external
// identity provider and passed in with each request.
type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

// Identity is the already-authenticated requester. The service never parses
// credentials itself.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the requester has admin rights.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Booking represents a court reservation. Once confirmed its time span is a
// busy period for the date; cancellation keeps the row for history.
type Booking struct {
	ID     int64
	UserID int64

	// Date is the booking's calendar date in the court's local timezone.
	// Comparisons are by calendar identity, never by absolute instant.
	Date  time.Time
	Start timeofday.Minutes
	End   timeofday.Minutes

	Status BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking still occupies its time span.
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled reports whether the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Interval returns the booking's busy span.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// BusyIntervals extracts the busy spans of the active bookings in list.
// Cancelled bookings free their span immediately.
func BusyIntervals(bookings []*Booking) []Interval {
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			busy = append(busy, b.Interval())
		}
	}
	return busy
}
