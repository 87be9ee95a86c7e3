package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBooking(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		checkIn  time.Time
		checkOut time.Time
		name     string
		errMsg   string
		guests   int
	}{
		{name: "valid", checkIn: day(12), checkOut: day(14), guests: 2},
		{name: "check-in today", checkIn: day(10), checkOut: day(11), guests: 1},
		{name: "missing dates", guests: 1, errMsg: "dates are required"},
		{name: "past check-in", checkIn: day(9), checkOut: day(11), guests: 1, errMsg: "cannot be in the past"},
		{name: "same day", checkIn: day(12), checkOut: day(12), guests: 1, errMsg: "check-out must be after check-in"},
		{name: "reversed", checkIn: day(14), checkOut: day(12), guests: 1, errMsg: "check-out must be after check-in"},
		{name: "too long", checkIn: day(12), checkOut: day(12).AddDate(0, 0, 31), guests: 1, errMsg: "must not exceed 30 nights"},
		{name: "no guests", checkIn: day(12), checkOut: day(13), guests: 0, errMsg: "at least one guest"},
		{name: "too many guests", checkIn: day(12), checkOut: day(13), guests: 11, errMsg: "must not exceed 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(tt.checkIn, tt.checkOut, tt.guests, now)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNights(t *testing.T) {
	in := time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)
	out := time.Date(2026, 5, 15, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, Nights(in, out))
}
