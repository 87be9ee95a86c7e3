package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
)

const hotelColumns = `id, name, city, address, description, rating`

// ListHotels returns hotels ordered by rating, optionally filtered by city
func (s *Storage) ListHotels(ctx context.Context, city string) ([]*models.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels`
	var args []any
	if city != "" {
		query += ` WHERE city = ? COLLATE NOCASE`
		args = append(args, city)
	}
	query += ` ORDER BY rating DESC, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]*models.Hotel, 0)
	for rows.Next() {
		h := &models.Hotel{}
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.Description, &h.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hotels: %w", err)
	}

	return hotels, nil
}

// GetHotel retrieves a hotel by ID
func (s *Storage) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	h := &models.Hotel{}
	err := s.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.Description, &h.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return h, nil
}

// ListRooms returns rooms of a hotel ordered by price
func (s *Storage) ListRooms(ctx context.Context, hotelID string) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hotel_id, name, capacity, price_per_night
		FROM rooms
		WHERE hotel_id = ?
		ORDER BY price_per_night, name
	`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		r := &models.Room{}
		if err := rows.Scan(&r.ID, &r.HotelID, &r.Name, &r.Capacity, &r.PricePerNight); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// GetRoom retrieves a room by ID
func (s *Storage) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	r := &models.Room{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, hotel_id, name, capacity, price_per_night
		FROM rooms
		WHERE id = ?
	`, id).Scan(&r.ID, &r.HotelID, &r.Name, &r.Capacity, &r.PricePerNight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return r, nil
}
