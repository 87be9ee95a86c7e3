package validation

import (
	"fmt"
	"time"
)

const (
	// MaxGuests ограничивает число гостей в одном бронировании
	MaxGuests = 10
	// MaxStayNights максимальная длительность проживания
	MaxStayNights = 30
)

// ValidateBooking проверяет даты и число гостей бронирования.
// Даты сравниваются по календарным дням в UTC.
func ValidateBooking(checkIn, checkOut time.Time, guests int, now time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return fmt.Errorf("check-in and check-out dates are required")
	}

	in := truncateDay(checkIn)
	out := truncateDay(checkOut)

	if in.Before(truncateDay(now)) {
		return fmt.Errorf("check-in date cannot be in the past")
	}
	if !out.After(in) {
		return fmt.Errorf("check-out must be after check-in")
	}
	if nights := Nights(in, out); nights > MaxStayNights {
		return fmt.Errorf("stay must not exceed %d nights", MaxStayNights)
	}

	if guests < 1 {
		return fmt.Errorf("at least one guest is required")
	}
	if guests > MaxGuests {
		return fmt.Errorf("number of guests must not exceed %d", MaxGuests)
	}

	return nil
}

// Nights возвращает число ночей между датами заезда и выезда
func Nights(checkIn, checkOut time.Time) int {
	return int(truncateDay(checkOut).Sub(truncateDay(checkIn)).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
