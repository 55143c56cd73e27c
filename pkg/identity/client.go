package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every request to the HR identity service. The
// mobile origin of this flow means a stalled call would otherwise pin the
// caller's loading state forever.
const DefaultTimeout = 15 * time.Second

// Client is a client for the HR identity service. It provides the login
// and QR-profile operations the badge screens are built on.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new identity service client with the default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Login authenticates with an employee id and password.
// A 401 response maps to ErrInvalidCredentials; transport failures
// (timeout, DNS, refused connection) map to *NetworkError.
func (c *Client) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.postJSON(ctx, "/api/auth/login", "", loginRequest{
		UserID:   userID,
		Password: password,
	}, &result)
	if err != nil {
		return nil, classify(err, ErrInvalidCredentials)
	}

	return &result, nil
}

// QrProfile fetches the QR badge profile for userID using a bearer token.
// A 401 maps to ErrUnauthorized (invalid or expired token), a 404 to
// ErrNotFound, and transport failures to *NetworkError.
func (c *Client) QrProfile(ctx context.Context, userID, token string) (*Profile, error) {
	var result qrCodeResponse
	err := c.postJSON(ctx, "/api/auth/getQrCode", token, qrCodeRequest{
		UserID: userID,
	}, &result)
	if err != nil {
		return nil, classify(err, ErrUnauthorized)
	}

	return &result.Data, nil
}

// ProfileURL builds the public badge URL encoded into the QR code.
func (c *Client) ProfileURL(recordID string) string {
	return fmt.Sprintf("%s/profile/%s", c.BaseURL, recordID)
}

// postJSON performs a JSON POST and decodes a 200 response into target.
// A non-empty token is sent as a bearer Authorization header.
func (c *Client) postJSON(ctx context.Context, path, token string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+path,
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}

	return decodeJSON(resp, target, http.StatusOK)
}
