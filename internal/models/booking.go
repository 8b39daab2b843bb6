package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Dentist   primitive.ObjectID `bson:"dentist" json:"dentist"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsActive reports whether the booking counts against the one-active-booking
// cap. Cancelled and completed bookings are terminal and do not.
func (b Booking) IsActive() bool {
	return b.Status != BookingCancelled && b.Status != BookingCompleted
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// BookingWithDentist is a booking enriched with a projection of its dentist,
// the shape list and get endpoints return.
type BookingWithDentist struct {
	Booking     `bson:",inline"`
	DentistInfo *DentistSummary `json:"dentistInfo,omitempty"`
}

type CreateBookingRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// UpdateBookingRequest carries a partial booking update. Pointer fields
// distinguish "absent" from zero values.
type UpdateBookingRequest struct {
	DentistID *string    `json:"dentistId"`
	Date      *time.Time `json:"date"`
	Status    *string    `json:"status"`
}
