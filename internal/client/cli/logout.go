package cli

import (
	"context"
	"fmt"
)

// runLogout отзывает refresh token на сервере (best effort) и очищает локальную сессию.
// Без активной сессии просто подчищает хранилище.
func (c *Cli) runLogout(ctx context.Context) error {
	snap := c.store.Snapshot()
	username := ""
	if snap.User != nil {
		username = snap.User.Username
	}

	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	switch {
	case !snap.LoggedIn():
		c.io.Println("Not logged in, local session data cleared.")
	case username != "":
		c.io.Printf("✓ Logout successful! Goodbye, %s.\n", username)
	default:
		c.io.Println("✓ Logout successful!")
	}
	return nil
}
