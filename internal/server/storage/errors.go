package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRoomUnavailable: номер уже забронирован на пересекающиеся даты
	ErrRoomUnavailable = errors.New("room is not available for the selected dates")

	// ErrAlreadyPaid indicates a second payment attempt for the same bill
	ErrAlreadyPaid = errors.New("bill already paid")
)
