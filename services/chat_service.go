package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"storefront/models"

	"github.com/google/uuid"
)

type ChatAPI interface {
	ListChat(ctx context.Context, guestID string) ([]models.ChatMessage, error)
	PostChat(ctx context.Context, req models.ChatPostRequest) error
}

type ChatOptions struct {
	Interval  time.Duration
	Timeout   time.Duration
	NewTicker func(time.Duration) Ticker
}

// ChatService mirrors the guest's conversation log. Every poll replaces the
// server log wholesale; messages sent locally are shown as pending echoes
// until the server copy with the same client id shows up.
type ChatService struct {
	api     ChatAPI
	session *Session
	poller  *Poller[[]models.ChatMessage]

	mu       sync.Mutex
	log      []models.ChatMessage
	pending  []models.ChatMessage
	lastErr  error
	onUpdate func([]models.ChatMessage)
}

func NewChatService(api ChatAPI, session *Session, opts ChatOptions) *ChatService {
	s := &ChatService{api: api, session: session}
	s.poller = NewPoller(PollerOptions[[]models.ChatMessage]{
		Name:      "ChatSync",
		Interval:  opts.Interval,
		Timeout:   opts.Timeout,
		NewTicker: opts.NewTicker,
		Fetch: func(ctx context.Context) ([]models.ChatMessage, error) {
			return s.api.ListChat(ctx, s.session.GuestID())
		},
		Apply:   s.replace,
		OnError: s.recordError,
	})
	return s
}

// OnUpdate registers fn to receive the merged view after each applied poll.
// fn runs on the polling goroutine and must not call Send.
func (s *ChatService) OnUpdate(fn func([]models.ChatMessage)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

func (s *ChatService) Start(ctx context.Context) error {
	return s.poller.Start(ctx)
}

func (s *ChatService) Stop() {
	s.poller.Stop()
}

func (s *ChatService) State() PollState {
	return s.poller.State()
}

// Messages returns the server log followed by any pending echoes.
func (s *ChatService) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merged()
}

func (s *ChatService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Send posts a message and triggers an immediate refetch instead of waiting
// for the next tick.
func (s *ChatService) Send(ctx context.Context, customerName, body string) error {
	customerName = strings.TrimSpace(customerName)
	body = strings.TrimSpace(body)

	var missing []string
	if customerName == "" {
		missing = append(missing, "customerName")
	}
	if body == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Message: "Name and message are required", Fields: missing}
	}

	echo := models.ChatMessage{
		GuestID:         s.session.GuestID(),
		Sender:          models.AuthorCustomer,
		CustomerName:    customerName,
		Message:         body,
		ClientMessageID: uuid.NewString(),
		CreatedAt:       time.Now(),
		Pending:         true,
	}

	s.mu.Lock()
	s.pending = append(s.pending, echo)
	s.mu.Unlock()

	err := s.api.PostChat(ctx, models.ChatPostRequest{
		CustomerName:    customerName,
		GuestID:         echo.GuestID,
		Message:         body,
		ClientMessageID: echo.ClientMessageID,
	})
	if err != nil {
		s.dropPending(echo.ClientMessageID)
		log.Printf("[ChatSync] send failed: %v", err)
		return fmt.Errorf("send chat message: %w", err)
	}

	s.poller.Refresh()
	return nil
}

func (s *ChatService) replace(messages []models.ChatMessage) {
	s.mu.Lock()
	previous := s.log
	s.log = messages
	s.lastErr = nil
	s.pending = reconcile(s.pending, previous, messages)

	view := s.merged()
	fn := s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn(view)
	}
}

// reconcile drops the echoes the server log now accounts for. An echo is
// matched by client id first. A server message without one can still claim an
// echo with the same guest and body, as long as it was not already in the
// previous log. Each server message claims at most one echo.
func reconcile(pending, previous, current []models.ChatMessage) []models.ChatMessage {
	if len(pending) == 0 {
		return pending
	}

	known := make(map[string]bool, len(previous))
	for _, m := range previous {
		known[m.ID] = true
	}

	byClientID := make(map[string]bool, len(current))
	var fresh []models.ChatMessage
	for _, m := range current {
		switch {
		case m.ClientMessageID != "":
			byClientID[m.ClientMessageID] = true
		case m.Sender != models.AuthorAdmin && !known[m.ID]:
			fresh = append(fresh, m)
		}
	}

	claimed := make([]bool, len(fresh))
	kept := pending[:0]
	for _, p := range pending {
		if byClientID[p.ClientMessageID] {
			continue
		}
		if i := claimFresh(fresh, claimed, p); i >= 0 {
			claimed[i] = true
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func claimFresh(fresh []models.ChatMessage, claimed []bool, echo models.ChatMessage) int {
	for i, m := range fresh {
		if claimed[i] || m.GuestID != echo.GuestID {
			continue
		}
		if strings.TrimSpace(m.Message) == echo.Message {
			return i
		}
	}
	return -1
}

func (s *ChatService) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *ChatService) dropPending(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pending[:0]
	for _, p := range s.pending {
		if p.ClientMessageID != clientID {
			kept = append(kept, p)
		}
	}
	s.pending = kept
}

func (s *ChatService) merged() []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(s.log)+len(s.pending))
	out = append(out, s.log...)
	out = append(out, s.pending...)
	return out
}
