package handlers

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
	"github.com/dabi61/opensky/internal/validation"
	"github.com/dabi61/opensky/pkg/api"
)

const billCodePrefix = "BILL-"

// BookingHandler serves /api/v1/bookings
type BookingHandler struct {
	responder
	catalog  storage.CatalogStorage
	bookings storage.BookingStorage
	now      func() time.Time
}

func NewBookingHandler(logger *slog.Logger, catalog storage.CatalogStorage, bookings storage.BookingStorage) *BookingHandler {
	return &BookingHandler{
		responder: responder{logger: logger},
		catalog:   catalog,
		bookings:  bookings,
		now:       time.Now,
	}
}

// Create обрабатывает POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateBookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	now := h.now()
	if err := validation.ValidateBooking(req.CheckIn, req.CheckOut, req.Guests, now); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := h.catalog.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			h.sendError(w, "room not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get room", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if req.Guests > room.Capacity {
		h.sendError(w, fmt.Sprintf("room fits at most %d guests", room.Capacity), http.StatusBadRequest)
		return
	}

	billCode, err := newBillCode()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate bill code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	in, out := calendarDay(req.CheckIn), calendarDay(req.CheckOut)
	booking := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		RoomID:     room.ID,
		HotelID:    room.HotelID,
		CheckIn:    in,
		CheckOut:   out,
		Guests:     req.Guests,
		TotalPrice: int64(validation.Nights(in, out)) * room.PricePerNight,
		Status:     models.BookingPending,
		BillCode:   billCode,
		CreatedAt:  now.UTC(),
	}

	if err := h.bookings.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, storage.ErrRoomUnavailable) {
			h.sendError(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create booking", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "booking created",
		slog.String("user_id", userID),
		slog.String("booking_id", booking.ID),
		slog.String("room_id", room.ID))

	h.sendJSON(w, toAPIBooking(booking), http.StatusCreated)
}

// List обрабатывает GET /api/v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.bookings.ListUserBookings(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list bookings", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Booking, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toAPIBooking(b))
	}
	h.sendJSON(w, resp, http.StatusOK)
}

// Pay обрабатывает POST /api/v1/bookings/pay с содержимым QR кода счета
func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PayBillRequest
	if !h.decode(w, r, &req) {
		return
	}

	code, ok := strings.CutPrefix(strings.TrimSpace(req.QRPayload), api.BillQRPrefix)
	if !ok || code == "" {
		h.sendError(w, "invalid QR payload", http.StatusBadRequest)
		return
	}

	booking, err := h.bookings.PayBill(ctx, userID, code, h.now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBookingNotFound):
			h.sendError(w, "bill not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrAlreadyPaid):
			h.sendError(w, "bill already paid", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to pay bill", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "bill paid",
		slog.String("user_id", userID),
		slog.String("booking_id", booking.ID))

	h.sendJSON(w, api.PayBillResponse{
		BookingID: booking.ID,
		Amount:    booking.TotalPrice,
		PaidAt:    *booking.PaidAt,
	}, http.StatusOK)
}

// newBillCode returns BILL- followed by 8 random base32 characters
func newBillCode() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return billCodePrefix + base32.StdEncoding.EncodeToString(b), nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toAPIBooking(b *models.Booking) api.Booking {
	return api.Booking{
		ID:         b.ID,
		RoomID:     b.RoomID,
		HotelID:    b.HotelID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		BillCode:   b.BillCode,
		CreatedAt:  b.CreatedAt,
	}
}
