package storage

import (
	"context"
	"time"

	"github.com/dabi61/opensky/internal/models"
)

// BookingStorage defines interface for booking persistence
type BookingStorage interface {
	// CreateBooking inserts the booking unless the room already has
	// an overlapping booking, in which case it returns ErrRoomUnavailable.
	CreateBooking(ctx context.Context, booking *models.Booking) error

	// ListUserBookings returns bookings of a user, newest first
	ListUserBookings(ctx context.Context, userID string) ([]*models.Booking, error)

	// RoomBookedBetween reports whether the room has a booking overlapping [in, out)
	RoomBookedBetween(ctx context.Context, roomID string, in, out time.Time) (bool, error)

	// PayBill marks the user's booking with the given bill code as paid.
	// Returns ErrBookingNotFound or ErrAlreadyPaid.
	PayBill(ctx context.Context, userID, billCode string, paidAt time.Time) (*models.Booking, error)
}
