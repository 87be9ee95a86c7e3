package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dabi61/opensky/internal/validation"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

const dateLayout = "2006-01-02"

func (c *Cli) runBook(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: opensky book <room-id> <check-in> <check-out> [guests]")
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	checkIn, err := time.Parse(dateLayout, args[1])
	if err != nil {
		return fmt.Errorf("invalid check-in date %q, expected YYYY-MM-DD", args[1])
	}
	checkOut, err := time.Parse(dateLayout, args[2])
	if err != nil {
		return fmt.Errorf("invalid check-out date %q, expected YYYY-MM-DD", args[2])
	}
	guests := 1
	if len(args) == 4 {
		guests, err = strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid guests count %q", args[3])
		}
	}
	if err := validation.ValidateBooking(checkIn, checkOut, guests, c.now()); err != nil {
		return err
	}

	booking, err := c.bookingAPI.CreateBooking(ctx, pkgapi.CreateBookingRequest{
		RoomID:   args[0],
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	c.io.Println("✓ Booking created!")
	c.io.Printf("Booking ID: %s\n", booking.ID)
	c.io.Printf("Nights: %d\n", validation.Nights(booking.CheckIn, booking.CheckOut))
	c.io.Printf("Total: %s\n", formatMoney(booking.TotalPrice))
	c.io.Printf("Bill code: %s\n", booking.BillCode)
	c.io.Printf("QR payload: %s%s\n", pkgapi.BillQRPrefix, booking.BillCode)

	return nil
}

func (c *Cli) runBookings(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	bookings, err := c.bookingAPI.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}
	if len(bookings) == 0 {
		c.io.Println("No bookings yet.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tROOM\tCHECK-IN\tCHECK-OUT\tGUESTS\tTOTAL\tSTATUS\tBILL")
	for _, b := range bookings {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			b.ID, b.RoomID,
			b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
			b.Guests, formatMoney(b.TotalPrice), b.Status, b.BillCode)
	}
	return w.Flush()
}

func (c *Cli) runPay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: opensky pay <qr-payload>")
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	payload := strings.TrimSpace(args[0])
	if !strings.HasPrefix(payload, pkgapi.BillQRPrefix) || len(payload) == len(pkgapi.BillQRPrefix) {
		return fmt.Errorf("invalid QR payload: expected %s<code>", pkgapi.BillQRPrefix)
	}

	resp, err := c.bookingAPI.PayBill(ctx, payload)
	if err != nil {
		return fmt.Errorf("payment failed: %w", err)
	}

	c.io.Println("✓ Payment accepted")
	c.io.Printf("Booking ID: %s\n", resp.BookingID)
	c.io.Printf("Amount: %s\n", formatMoney(resp.Amount))
	c.io.Printf("Paid at: %s\n", resp.PaidAt.Format(time.RFC3339))
	return nil
}
