package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
	"github.com/dabi61/opensky/pkg/api"
)

const dateLayout = "2006-01-02"

// CatalogHandler serves hotels and rooms
type CatalogHandler struct {
	responder
	catalog  storage.CatalogStorage
	bookings storage.BookingStorage
	now      func() time.Time
}

func NewCatalogHandler(logger *slog.Logger, catalog storage.CatalogStorage, bookings storage.BookingStorage) *CatalogHandler {
	return &CatalogHandler{
		responder: responder{logger: logger},
		catalog:   catalog,
		bookings:  bookings,
		now:       time.Now,
	}
}

// ListHotels обрабатывает GET /api/v1/hotels?city=
func (h *CatalogHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotels, err := h.catalog.ListHotels(ctx, r.URL.Query().Get("city"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list hotels", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		resp = append(resp, toAPIHotel(hotel))
	}
	h.sendJSON(w, resp, http.StatusOK)
}

// GetHotel обрабатывает GET /api/v1/hotels/{id}
func (h *CatalogHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hotel, err := h.catalog.GetHotel(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrHotelNotFound) {
			h.sendError(w, "hotel not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get hotel", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, toAPIHotel(hotel), http.StatusOK)
}

// ListRooms обрабатывает GET /api/v1/hotels/{id}/rooms[?checkIn=&checkOut=].
// Без дат доступность считается на ближайшую ночь.
func (h *CatalogHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hotelID := mux.Vars(r)["id"]

	in, out, err := h.stayRange(r)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.catalog.GetHotel(ctx, hotelID); err != nil {
		if errors.Is(err, storage.ErrHotelNotFound) {
			h.sendError(w, "hotel not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get hotel", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rooms, err := h.catalog.ListRooms(ctx, hotelID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rooms", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Room, 0, len(rooms))
	for _, room := range rooms {
		taken, err := h.bookings.RoomBookedBetween(ctx, room.ID, in, out)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to check availability", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		resp = append(resp, toAPIRoom(room, !taken))
	}
	h.sendJSON(w, resp, http.StatusOK)
}

func (h *CatalogHandler) stayRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	if q.Get("checkIn") == "" && q.Get("checkOut") == "" {
		y, m, d := h.now().UTC().Date()
		in := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return in, in.AddDate(0, 0, 1), nil
	}

	in, err := time.Parse(dateLayout, q.Get("checkIn"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("checkIn must be YYYY-MM-DD")
	}
	out, err := time.Parse(dateLayout, q.Get("checkOut"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("checkOut must be YYYY-MM-DD")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, errors.New("checkOut must be after checkIn")
	}
	return in, out, nil
}

func toAPIHotel(h *models.Hotel) api.Hotel {
	return api.Hotel{
		ID:          h.ID,
		Name:        h.Name,
		City:        h.City,
		Address:     h.Address,
		Description: h.Description,
		Rating:      h.Rating,
	}
}

func toAPIRoom(r *models.Room, available bool) api.Room {
	return api.Room{
		ID:            r.ID,
		HotelID:       r.HotelID,
		Name:          r.Name,
		Capacity:      r.Capacity,
		PricePerNight: r.PricePerNight,
		Available:     available,
	}
}
