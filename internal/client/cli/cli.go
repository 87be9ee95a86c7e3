// Package cli implements the commands of the opensky client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/auth"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/iocli"
	"github.com/dabi61/opensky/internal/client/session"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

//go:generate moq -out booking_mock.go . BookingAPI

// BookingAPI is the part of the REST client used by booking commands.
// It is expected to run over the refreshing transport.
type BookingAPI interface {
	Me(ctx context.Context) (*pkgapi.UserProfile, error)
	UpdateProfile(ctx context.Context, req pkgapi.UpdateProfileRequest) (*pkgapi.UserProfile, error)
	ListHotels(ctx context.Context, city string) ([]pkgapi.Hotel, error)
	GetHotel(ctx context.Context, id string) (*pkgapi.Hotel, error)
	ListRooms(ctx context.Context, hotelID string) ([]pkgapi.Room, error)
	CreateBooking(ctx context.Context, req pkgapi.CreateBookingRequest) (*pkgapi.Booking, error)
	ListBookings(ctx context.Context) ([]pkgapi.Booking, error)
	PayBill(ctx context.Context, qrPayload string) (*pkgapi.PayBillResponse, error)
}

var _ BookingAPI = (*api.Client)(nil)

// PasswordEnv is checked first when a password is needed
const PasswordEnv = "OPENSKY_PASSWORD"

var (
	errNotAuthenticated = errors.New("not authenticated. Please run 'opensky login' first")
	errSessionExpired   = errors.New("session expired")
)

// PasswordSources lists non-interactive password sources
type PasswordSources struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io          iocli.IO
	authService auth.Service
	bookingAPI  BookingAPI
	store       *session.Store
	bus         *events.Bus
	now         func() time.Time
	passwords   PasswordSources
}

func New(io iocli.IO, authService auth.Service, bookingAPI BookingAPI, store *session.Store, bus *events.Bus, passwords PasswordSources) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		bookingAPI:  bookingAPI,
		store:       store,
		bus:         bus,
		now:         time.Now,
		passwords:   passwords,
	}
}

// getPassword retrieves the password from various sources with priority:
// 1. Environment variable OPENSKY_PASSWORD
// 2. File given by --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// requireSession fails fast when there is nothing to authorize requests with
func (c *Cli) requireSession() error {
	if !c.store.IsLoggedIn() {
		return errNotAuthenticated
	}
	return nil
}

// authorized runs a command that talks to the API over the refreshing
// transport. A SessionExpired published meanwhile becomes the re-login prompt.
func (c *Cli) authorized(run func() error) error {
	evts, stop := c.bus.Subscribe(4)
	defer stop()

	err := run()

	// Refresher публикует синхронно, событие уже в буфере
	for {
		select {
		case e, ok := <-evts:
			if !ok {
				return err
			}
			if e.Kind != events.SessionExpired {
				continue
			}
			c.io.Println("Your session has expired. Please run 'opensky login' again.")
			if err == nil {
				return nil
			}
			return fmt.Errorf("%w: %w", errSessionExpired, err)
		default:
			return err
		}
	}
}

func PrintUsage(w io.Writer) {
	lines := []string{
		"OpenSky Client",
		"",
		"Usage:",
		"  opensky [OPTIONS] COMMAND [ARGS]",
		"",
		"Options:",
		"  --version                    Show version information",
		"  --server URL                 Server URL (default: http://localhost:8080)",
		"  --db PATH                    Path to local session database (default: opensky-client.db)",
		"  --storage bolt|redis         Session storage backend (default: bolt)",
		"  --password PASSWORD          Password (not recommended, use env var or file)",
		"  --password-file PATH         Path to file containing password",
		"  --log-level LEVEL            debug, info, warn or error (default: warn)",
		"",
		"Password Priority (highest to lowest):",
		"  1. OPENSKY_PASSWORD environment variable",
		"  2. --password-file (file path)",
		"  3. --password (command line)",
		"  4. Interactive prompt (fallback)",
		"",
		"Commands:",
		"  register                              Register new user",
		"  login                                 Login to server",
		"  logout                                Logout from server",
		"  status                                Show session status",
		"  profile                               Show profile",
		"  profile set [--full-name N] [--email E] [--phone P] [--avatar URL]",
		"                                        Update profile",
		"  hotels [city]                         List hotels",
		"  rooms <hotel-id>                      List rooms of a hotel",
		"  book <room-id> <check-in> <check-out> [guests]",
		"                                        Book a room (dates as YYYY-MM-DD)",
		"  bookings                              List your bookings",
		"  pay <qr-payload>                      Pay a bill by its QR code content",
		"  watch                                 Print session changes until interrupted",
		"",
		"Examples:",
		"  opensky login",
		"  opensky hotels \"Da Nang\"",
		"  opensky book 5f0c... 2026-05-12 2026-05-14 2",
		"  opensky pay opensky://bill/BILL-7K2Q",
		"  opensky --server https://example.com status",
	}
	for _, l := range lines {
		_, _ = fmt.Fprintln(w, l)
	}
}

// passwordFromFlags reports whether a non-interactive source is configured
func (c *Cli) passwordFromFlags() bool {
	return os.Getenv(PasswordEnv) != "" || c.passwords.FromFile != "" || c.passwords.FromArgs != ""
}
