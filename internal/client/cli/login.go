package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем username
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	sess, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	if sess.User != nil {
		c.io.Printf("Username: %s\n", sess.User.Username)
	}
	if exp := sess.AccessExpiresAt(); !exp.IsZero() {
		c.io.Printf("Access token expires in: %s\n", exp.Sub(c.now()).Round(time.Second))
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
