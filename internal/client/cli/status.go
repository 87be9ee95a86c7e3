package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	snap := c.store.Snapshot()
	if !snap.LoggedIn() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'opensky login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if snap.User != nil {
		c.io.Printf("Username: %s\n", snap.User.Username)
		if snap.User.FullName != "" {
			c.io.Printf("Name: %s\n", snap.User.FullName)
		}
	}

	c.io.Printf("Access token: %s\n", maskToken(snap.AccessToken))

	now := c.now()
	if exp := snap.AccessExpiresAt(); !exp.IsZero() {
		c.io.Printf("Access token expires: %s\n", exp.Format(time.RFC3339))
		if remaining := exp.Sub(now); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("Access token has expired; it will be refreshed on the next request.")
		}
	} else {
		c.io.Println("Access token expiry: unknown")
	}

	if snap.RefreshTokenExpiry != 0 {
		refreshExp := time.Unix(snap.RefreshTokenExpiry, 0).UTC()
		c.io.Printf("Session valid until: %s\n", refreshExp.Format(time.RFC3339))
		if !refreshExp.After(now) {
			c.io.Println("⚠️  Session has expired. Please login again.")
		}
	}

	return nil
}
