package transport

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dabi61/opensky/internal/client/api"
)

// HeaderRequestID correlates client requests with server logs
const HeaderRequestID = "X-Request-ID"

// TokenReader provides the current access token
type TokenReader interface {
	AccessToken() string
}

// Authorizer attaches the bearer token to requests for the API host.
// Other hosts and the auth endpoints pass through untouched.
type Authorizer struct {
	next     http.RoundTripper
	tokens   TokenReader
	excluded map[string]struct{}
	host     string
}

// NewAuthorizer creates an authorizer for requests to apiURL. The auth
// endpoints are excluded relative to the path of apiURL.
func NewAuthorizer(next http.RoundTripper, tokens TokenReader, apiURL *url.URL) *Authorizer {
	if next == nil {
		next = http.DefaultTransport
	}
	base := strings.TrimRight(apiURL.Path, "/")
	return &Authorizer{
		next:   next,
		tokens: tokens,
		host:   canonicalHost(apiURL),
		excluded: map[string]struct{}{
			base + api.PathLogin:    {},
			base + api.PathRefresh:  {},
			base + api.PathRegister: {},
		},
	}
}

// Applies reports whether req is an API request that carries credentials
func (a *Authorizer) Applies(req *http.Request) bool {
	if req.URL == nil || canonicalHost(req.URL) != a.host {
		return false
	}
	_, skip := a.excluded[req.URL.Path]
	return !skip
}

// canonicalHost returns host:port in lower case with the scheme's default
// port filled in, so http://api.test and http://api.test:80 compare equal.
func canonicalHost(u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "https", "wss":
			port = "443"
		default:
			port = "80"
		}
	}
	return net.JoinHostPort(strings.ToLower(u.Hostname()), port)
}

// Authorize returns a copy of req with the current token attached,
// or req itself when it does not apply.
func (a *Authorizer) Authorize(req *http.Request) *http.Request {
	if !a.Applies(req) {
		return req
	}

	out := req.Clone(req.Context())
	if token := a.tokens.AccessToken(); token != "" {
		setBearer(out, token)
	}
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return out
}

// RoundTrip implements http.RoundTripper
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	return a.next.RoundTrip(a.Authorize(req))
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// bearerToken extracts the token a request was sent with
func bearerToken(req *http.Request) string {
	if req == nil {
		return ""
	}
	h := req.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return h[7:]
}
