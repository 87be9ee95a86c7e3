// Package api is the REST client of the booking backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dabi61/opensky/pkg/api"
)

// Paths of the auth endpoints. The authorizing transport never attaches
// credentials to them.
const (
	PathLogin    = "/api/v1/auth/login"
	PathRegister = "/api/v1/auth/register"
	PathRefresh  = "/api/v1/auth/refresh"
	PathLogout   = "/api/v1/auth/logout"
)

const defaultTimeout = 30 * time.Second

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the round tripper, e.g. with the authorizing transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithTimeout sets the overall timeout of a single call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			// Ограничиваем количество редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, "POST", PathRegister, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, "POST", PathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new access token.
// Failures carry *HTTPError for status responses and the transport error otherwise.
func (c *Client) Refresh(ctx context.Context, refreshToken string) Result[api.RefreshResponse] {
	var resp api.RefreshResponse
	err := c.doRequest(ctx, "POST", PathRefresh, api.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err == nil && resp.AccessToken == "" {
		err = fmt.Errorf("refresh response has no access token")
	}
	return resultOf(resp, err)
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if err := c.doRequest(ctx, "POST", PathLogout, api.LogoutRequest{RefreshToken: refreshToken}, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*api.UserProfile, error) {
	var resp api.UserProfile
	if err := c.doRequest(ctx, "GET", "/api/v1/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile изменяет профиль текущего пользователя
func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.UserProfile, error) {
	var resp api.UserProfile
	if err := c.doRequest(ctx, "PUT", "/api/v1/me", req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}

// ListHotels returns the catalog, optionally filtered by city
func (c *Client) ListHotels(ctx context.Context, city string) ([]api.Hotel, error) {
	path := "/api/v1/hotels"
	if city != "" {
		path += "?city=" + url.QueryEscape(city)
	}
	var resp []api.Hotel
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list hotels request failed: %w", err)
	}
	return resp, nil
}

// GetHotel returns one hotel
func (c *Client) GetHotel(ctx context.Context, id string) (*api.Hotel, error) {
	var resp api.Hotel
	if err := c.doRequest(ctx, "GET", "/api/v1/hotels/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get hotel request failed: %w", err)
	}
	return &resp, nil
}

// ListRooms returns rooms of a hotel
func (c *Client) ListRooms(ctx context.Context, hotelID string) ([]api.Room, error) {
	var resp []api.Room
	path := fmt.Sprintf("/api/v1/hotels/%s/rooms", url.PathEscape(hotelID))
	if err := c.doRequest(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list rooms request failed: %w", err)
	}
	return resp, nil
}

// CreateBooking бронирует номер
func (c *Client) CreateBooking(ctx context.Context, req api.CreateBookingRequest) (*api.Booking, error) {
	var resp api.Booking
	if err := c.doRequest(ctx, "POST", "/api/v1/bookings", req, &resp); err != nil {
		return nil, fmt.Errorf("create booking request failed: %w", err)
	}
	return &resp, nil
}

// ListBookings returns bookings of the signed-in user
func (c *Client) ListBookings(ctx context.Context) ([]api.Booking, error) {
	var resp []api.Booking
	if err := c.doRequest(ctx, "GET", "/api/v1/bookings", nil, &resp); err != nil {
		return nil, fmt.Errorf("list bookings request failed: %w", err)
	}
	return resp, nil
}

// PayBill оплачивает счет по содержимому QR-кода
func (c *Client) PayBill(ctx context.Context, qrPayload string) (*api.PayBillResponse, error) {
	var resp api.PayBillResponse
	req := api.PayBillRequest{QRPayload: qrPayload}
	if err := c.doRequest(ctx, "POST", "/api/v1/bookings/pay", req, &resp); err != nil {
		return nil, fmt.Errorf("pay bill request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		// bytes.Reader позволяет http.NewRequest выставить GetBody для повторной отправки
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newHTTPError(status int, body []byte) *HTTPError {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &HTTPError{StatusCode: status, Message: msg}
	}
	return &HTTPError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}
