package cli

import (
	"context"
	"time"

	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/session"
)

// runWatch печатает изменения сессии и события шины до отмены ctx
func (c *Cli) runWatch(ctx context.Context) error {
	sessions, stopSessions := c.store.Subscribe()
	defer stopSessions()
	evts, stopEvents := c.bus.Subscribe(8)
	defer stopEvents()

	c.io.Println("Watching session changes, press Ctrl+C to stop.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-sessions:
			if !ok {
				return nil
			}
			c.printSessionLine(s)
		case e, ok := <-evts:
			if !ok {
				return nil
			}
			c.printEvent(e)
		}
	}
}

func (c *Cli) printSessionLine(s session.Session) {
	ts := c.now().Format(time.TimeOnly)
	if !s.LoggedIn() {
		c.io.Printf("[%s] session: signed out\n", ts)
		return
	}
	user := "?"
	if s.User != nil {
		user = s.User.Username
	}
	if exp := s.AccessExpiresAt(); !exp.IsZero() {
		c.io.Printf("[%s] session: %s, access token until %s\n", ts, user, exp.Format(time.RFC3339))
		return
	}
	c.io.Printf("[%s] session: %s\n", ts, user)
}

func (c *Cli) printEvent(e events.Event) {
	ts := e.At.Format(time.TimeOnly)
	switch e.Kind {
	case events.SessionExpired:
		c.io.Printf("[%s] session expired, please login again\n", ts)
	default:
		c.io.Printf("[%s] event: %s\n", ts, e.Kind)
	}
}
