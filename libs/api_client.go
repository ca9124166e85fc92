package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/models"
)

// APIClient talks to the storefront REST backend. It satisfies the
// ChatAPI, StatsAPI, OrderAPI and UserAPI interfaces in services.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) ListChat(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	path := "/api/chat?guestId=" + url.QueryEscape(guestID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *APIClient) PostChat(ctx context.Context, req models.ChatPostRequest) error {
	return c.do(ctx, http.MethodPost, "/api/chat", "", req, nil)
}

func (c *APIClient) AdminStats(ctx context.Context, token string) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *APIClient) CreateOrder(ctx context.Context, token string, order models.OrderSubmission) (*models.OrderConfirmation, error) {
	var envelope struct {
		Success bool                     `json:"success"`
		Message string                   `json:"message"`
		Data    models.OrderConfirmation `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", token, order, &envelope); err != nil {
		return nil, err
	}

	conf := envelope.Data
	if conf.OrderID == "" {
		conf.OrderID = order.OrderID
	}
	if conf.Status == "" {
		conf.Status = order.Status
	}
	if conf.Message == "" {
		conf.Message = envelope.Message
	}
	return &conf, nil
}

func (c *APIClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) GetMe(ctx context.Context, token string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *APIClient) UpdateMe(ctx context.Context, token string, req models.UpdateProfileRequest) error {
	return c.do(ctx, http.MethodPut, "/api/users/me", token, req, nil)
}

func (c *APIClient) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/api/users/me/password", token, req, nil)
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &models.NetworkError{
			StatusCode: resp.StatusCode,
			Message:    "Unexpected response from server",
			Err:        err,
		}
	}
	return nil
}

func statusError(status int, raw []byte) error {
	var body models.ErrorResponse
	_ = json.Unmarshal(raw, &body)

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		msg := body.Message
		if msg == "" {
			msg = "Session expired, please login again"
		}
		return &models.AuthError{Message: msg}
	}

	return &models.NetworkError{
		StatusCode: status,
		Message:    body.Message,
		Err:        errors.New(http.StatusText(status)),
	}
}
