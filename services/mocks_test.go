package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/require"
)

// memStore implements SessionStore in memory.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func newTestSession(t *testing.T, token string) *Session {
	t.Helper()
	store := newMemStore()
	if token != "" {
		store.values[tokenKey] = token
	}
	s, err := LoadSession(store)
	require.NoError(t, err)
	return s
}

// manualTicker lets tests fire ticks by hand.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time, 16)}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

func (m *manualTicker) Tick() { m.ch <- time.Now() }

func (m *manualTicker) factory() func(time.Duration) Ticker {
	return func(time.Duration) Ticker { return m }
}

type MockChatAPI struct {
	ListChatFunc func(ctx context.Context, guestID string) ([]models.ChatMessage, error)
	PostChatFunc func(ctx context.Context, req models.ChatPostRequest) error
}

func (m *MockChatAPI) ListChat(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
	if m.ListChatFunc != nil {
		return m.ListChatFunc(ctx, guestID)
	}
	return nil, nil
}

func (m *MockChatAPI) PostChat(ctx context.Context, req models.ChatPostRequest) error {
	if m.PostChatFunc != nil {
		return m.PostChatFunc(ctx, req)
	}
	return nil
}

type MockStatsAPI struct {
	AdminStatsFunc func(ctx context.Context, token string) (*models.AdminStats, error)
}

func (m *MockStatsAPI) AdminStats(ctx context.Context, token string) (*models.AdminStats, error) {
	if m.AdminStatsFunc != nil {
		return m.AdminStatsFunc(ctx, token)
	}
	return &models.AdminStats{}, nil
}

type MockOrderAPI struct {
	CreateOrderFunc func(ctx context.Context, token string, order models.OrderSubmission) (*models.OrderConfirmation, error)
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, token string, order models.OrderSubmission) (*models.OrderConfirmation, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, token, order)
	}
	return &models.OrderConfirmation{OrderID: order.OrderID, Status: order.Status}, nil
}

type MockUserAPI struct {
	LoginFunc          func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	GetMeFunc          func(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateMeFunc       func(ctx context.Context, token string, req models.UpdateProfileRequest) error
	ChangePasswordFunc func(ctx context.Context, token string, req models.ChangePasswordRequest) error
}

func (m *MockUserAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &models.LoginResponse{Token: "token"}, nil
}

func (m *MockUserAPI) GetMe(ctx context.Context, token string) (*models.UserProfile, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx, token)
	}
	return &models.UserProfile{}, nil
}

func (m *MockUserAPI) UpdateMe(ctx context.Context, token string, req models.UpdateProfileRequest) error {
	if m.UpdateMeFunc != nil {
		return m.UpdateMeFunc(ctx, token, req)
	}
	return nil
}

func (m *MockUserAPI) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, token, req)
	}
	return nil
}

type MockUploader struct {
	UploadImageFunc func(ctx context.Context, localPath string) (string, error)
}

func (m *MockUploader) UploadImage(ctx context.Context, localPath string) (string, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, localPath)
	}
	return "https://cdn.test/" + localPath, nil
}
