package storage

import (
	"context"

	"github.com/dabi61/opensky/internal/models"
)

// CatalogStorage serves the read-only hotel catalog
type CatalogStorage interface {
	// ListHotels returns hotels ordered by rating; empty city means all cities.
	// City matching is case-insensitive.
	ListHotels(ctx context.Context, city string) ([]*models.Hotel, error)

	// GetHotel returns ErrHotelNotFound if hotel doesn't exist
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)

	// ListRooms returns rooms of a hotel ordered by price
	ListRooms(ctx context.Context, hotelID string) ([]*models.Room, error)

	// GetRoom returns ErrRoomNotFound if room doesn't exist
	GetRoom(ctx context.Context, id string) (*models.Room, error)
}
