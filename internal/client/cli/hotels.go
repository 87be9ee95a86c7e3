package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

func (c *Cli) runHotels(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	city := strings.TrimSpace(strings.Join(args, " "))

	hotels, err := c.bookingAPI.ListHotels(ctx, city)
	if err != nil {
		return fmt.Errorf("failed to list hotels: %w", err)
	}
	if len(hotels) == 0 {
		c.io.Println("No hotels found.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCITY\tRATING")
	for _, h := range hotels {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", h.ID, h.Name, h.City, h.Rating)
	}
	return w.Flush()
}

func (c *Cli) runRooms(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: opensky rooms <hotel-id>")
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	hotel, err := c.bookingAPI.GetHotel(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get hotel: %w", err)
	}
	rooms, err := c.bookingAPI.ListRooms(ctx, hotel.ID)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	c.io.Printf("%s, %s\n", hotel.Name, hotel.Address)
	if len(rooms) == 0 {
		c.io.Println("No rooms found.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCAPACITY\tPRICE/NIGHT\tAVAILABLE")
	for _, r := range rooms {
		avail := "no"
		if r.Available {
			avail = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Capacity, formatMoney(r.PricePerNight), avail)
	}
	return w.Flush()
}

// formatMoney prints minor currency units with two decimals
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
