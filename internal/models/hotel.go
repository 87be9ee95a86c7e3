package models

import "time"

// Hotel is a catalog entry
type Hotel struct {
	ID          string
	Name        string
	City        string
	Address     string
	Description string
	Rating      float64
}

// Room belongs to exactly one hotel
type Room struct {
	ID            string
	HotelID       string
	Name          string
	Capacity      int
	PricePerNight int64 // в минимальных единицах валюты
}

// Booking statuses
const (
	BookingPending = "pending"
	BookingPaid    = "paid"
)

// Booking is a reservation of one room for a date range [CheckIn, CheckOut)
type Booking struct {
	ID         string
	UserID     string
	RoomID     string
	HotelID    string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalPrice int64
	Status     string
	BillCode   string
	CreatedAt  time.Time
	PaidAt     *time.Time
}

// Overlaps reports whether the booking intersects the half-open range [in, out)
func (b *Booking) Overlaps(in, out time.Time) bool {
	return b.CheckIn.Before(out) && in.Before(b.CheckOut)
}
