package transport

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultCushion is how long before expiry the access token is refreshed ahead of time
const DefaultCushion = 90 * time.Second

// drainLimit caps how much of a discarded 401 body is read to keep the connection reusable
const drainLimit = 4 << 10

// Transport is the authenticated round tripper of the API client:
// authorize, send, and on 401 refresh and retry.
type Transport struct {
	base       http.RoundTripper
	authorizer *Authorizer
	refresher  *Refresher
	cushion    time.Duration
}

// Config describes the API the transport authenticates against
type Config struct {
	Base    http.RoundTripper // nil means http.DefaultTransport
	APIURL  string
	Cushion time.Duration // 0 disables the proactive refresh
}

// New assembles the transport for cfg.APIURL
func New(cfg Config, store SessionStore, refresher *Refresher) (*Transport, error) {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", cfg.APIURL)
	}

	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return &Transport{
		base:       base,
		authorizer: NewAuthorizer(base, store, u),
		refresher:  refresher,
		cushion:    cfg.Cushion,
	}, nil
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.authorizer.Applies(req) {
		return t.base.RoundTrip(req)
	}

	if t.cushion > 0 {
		t.refresher.RefreshIfExpiring(req.Context(), t.cushion)
	}

	sent := t.authorizer.Authorize(req)
	resp, err := t.base.RoundTrip(sent)

	for err == nil && resp.StatusCode == http.StatusUnauthorized {
		if resp.Request == nil {
			resp.Request = sent
		}
		next := t.refresher.Authenticate(resp)
		if next == nil {
			return resp, nil
		}
		discard(resp)

		sent = next
		resp, err = t.base.RoundTrip(sent)
	}

	return resp, err
}

func discard(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
	_ = resp.Body.Close()
}
