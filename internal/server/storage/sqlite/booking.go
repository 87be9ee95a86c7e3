package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
)

const dateLayout = "2006-01-02"

const bookingColumns = `id, user_id, room_id, hotel_id, check_in, check_out, guests, total_price, status, bill_code, created_at, paid_at`

// overlapQuery: полуинтервалы [check_in, check_out) пересекаются
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE room_id = ? AND check_in < ? AND ? < check_out
	)
`

// CreateBooking inserts the booking if the room is free for its dates.
// The check and the insert share one transaction.
func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	in, out := b.CheckIn.UTC().Format(dateLayout), b.CheckOut.UTC().Format(dateLayout)

	var taken bool
	if err := tx.QueryRowContext(ctx, overlapQuery, b.RoomID, out, in).Scan(&taken); err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	if taken {
		return storage.ErrRoomUnavailable
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.UserID,
		b.RoomID,
		b.HotelID,
		in,
		out,
		b.Guests,
		b.TotalPrice,
		b.Status,
		b.BillCode,
		b.CreatedAt.UTC(),
		nullTime(b.PaidAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

// RoomBookedBetween reports whether the room has a booking overlapping [in, out)
func (s *Storage) RoomBookedBetween(ctx context.Context, roomID string, in, out time.Time) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, overlapQuery,
		roomID, out.UTC().Format(dateLayout), in.UTC().Format(dateLayout)).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return taken, nil
}

// ListUserBookings returns bookings of a user, newest first
func (s *Storage) ListUserBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// PayBill marks the user's booking with billCode as paid
func (s *Storage) PayBill(ctx context.Context, userID, billCode string, paidAt time.Time) (*models.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = ? AND bill_code = ?
	`, userID, billCode)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status == models.BookingPaid {
		return nil, storage.ErrAlreadyPaid
	}

	_, err = tx.ExecContext(ctx, `UPDATE bookings SET status = ?, paid_at = ? WHERE id = ?`,
		models.BookingPaid, paidAt.UTC(), b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	b.Status = models.BookingPaid
	paid := paidAt.UTC()
	b.PaidAt = &paid
	return b, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*models.Booking, error) {
	b := &models.Booking{}
	var (
		in, out string
		paidAt  sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.RoomID,
		&b.HotelID,
		&in,
		&out,
		&b.Guests,
		&b.TotalPrice,
		&b.Status,
		&b.BillCode,
		&b.CreatedAt,
		&paidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	if b.CheckIn, err = time.Parse(dateLayout, in); err != nil {
		return nil, fmt.Errorf("invalid check_in %q: %w", in, err)
	}
	if b.CheckOut, err = time.Parse(dateLayout, out); err != nil {
		return nil, fmt.Errorf("invalid check_out %q: %w", out, err)
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	return b, nil
}
