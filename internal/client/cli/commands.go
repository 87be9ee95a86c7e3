package cli

import (
	"context"
	"fmt"
)

// Run executes one command. Usage errors print the usage text.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.authorized(func() error { return c.runProfile(ctx, args) })
	case "hotels":
		return c.authorized(func() error { return c.runHotels(ctx, args) })
	case "rooms":
		return c.authorized(func() error { return c.runRooms(ctx, args) })
	case "book":
		return c.authorized(func() error { return c.runBook(ctx, args) })
	case "bookings":
		return c.authorized(func() error { return c.runBookings(ctx) })
	case "pay":
		return c.authorized(func() error { return c.runPay(ctx, args) })
	case "watch":
		return c.runWatch(ctx)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
