package api

import "time"

// Hotel представляет отель в каталоге
type Hotel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
}

// Room представляет номер отеля
type Room struct {
	ID            string `json:"id"`
	HotelID       string `json:"hotelId"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
	PricePerNight int64  `json:"pricePerNight"` // в минимальных единицах валюты
	Available     bool   `json:"available"`
}

// CreateBookingRequest is the payload for POST /api/v1/bookings.
type CreateBookingRequest struct {
	RoomID   string    `json:"roomId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Guests   int       `json:"guests"`
}

// Booking представляет бронирование пользователя
type Booking struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	HotelID    string    `json:"hotelId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice int64     `json:"totalPrice"`
	Status     string    `json:"status"` // pending | paid | cancelled
	BillCode   string    `json:"billCode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Booking statuses
const (
	BookingStatusPending = "pending"
	BookingStatusPaid    = "paid"
)

// BillQRPrefix is the scheme of the payload encoded into a bill QR code
const BillQRPrefix = "opensky://bill/"

// PayBillRequest carries the payload scanned from a bill QR code.
type PayBillRequest struct {
	QRPayload string `json:"qrPayload"`
}

// PayBillResponse подтверждает оплату счета
type PayBillResponse struct {
	BookingID string    `json:"bookingId"`
	Amount    int64     `json:"amount"`
	PaidAt    time.Time `json:"paidAt"`
}
