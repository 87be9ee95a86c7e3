package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dabi61/opensky/internal/client/session"
	"github.com/dabi61/opensky/internal/validation"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if len(args) > 0 && args[0] == "set" {
		return c.runProfileSet(ctx, args[1:])
	}

	profile, err := c.bookingAPI.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	// Профиль в сессии обновляется, ошибка записи на диск не критична
	if err := c.store.SetUser(ctx, profileFromAPI(profile)); err != nil {
		c.io.Printf("Warning: profile not saved locally: %v\n", err)
	}

	c.printProfile(profile)
	return nil
}

func (c *Cli) runProfileSet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile set", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var req pkgapi.UpdateProfileRequest
	fs.StringVar(&req.FullName, "full-name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.AvatarURL, "avatar", "", "avatar URL")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid profile flags: %w", err)
	}

	if req == (pkgapi.UpdateProfileRequest{}) {
		return fmt.Errorf("nothing to update: use --full-name, --email, --phone or --avatar")
	}
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return err
		}
	}
	if req.Phone != "" {
		if err := validation.ValidatePhone(req.Phone); err != nil {
			return err
		}
	}

	profile, err := c.bookingAPI.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if err := c.store.SetUser(ctx, profileFromAPI(profile)); err != nil {
		c.io.Printf("Warning: profile not saved locally: %v\n", err)
	}

	c.io.Println("✓ Profile updated")
	c.printProfile(profile)
	return nil
}

func (c *Cli) printProfile(p *pkgapi.UserProfile) {
	c.io.Println("=== Profile ===")
	c.io.Printf("ID:       %s\n", p.ID)
	c.io.Printf("Username: %s\n", p.Username)
	c.io.Printf("Name:     %s\n", orDash(p.FullName))
	c.io.Printf("Email:    %s\n", orDash(p.Email))
	c.io.Printf("Phone:    %s\n", orDash(p.Phone))
	c.io.Printf("Avatar:   %s\n", orDash(p.AvatarURL))
}

func profileFromAPI(p *pkgapi.UserProfile) *session.UserProfile {
	if p == nil {
		return nil
	}
	return &session.UserProfile{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
