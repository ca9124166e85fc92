package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatLog is a tiny server-side log behind MockChatAPI.
type fakeChatLog struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	lists    atomic.Int32
	posts    atomic.Int32
	hold     bool

	// dropClientID stores posts the way a backend that ignores
	// clientMessageId would.
	dropClientID bool
}

func (f *fakeChatLog) api() *MockChatAPI {
	return &MockChatAPI{
		ListChatFunc: func(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
			f.lists.Add(1)
			f.mu.Lock()
			defer f.mu.Unlock()
			var out []models.ChatMessage
			for _, m := range f.messages {
				if m.GuestID == guestID {
					out = append(out, m)
				}
			}
			return out, nil
		},
		PostChatFunc: func(ctx context.Context, req models.ChatPostRequest) error {
			f.posts.Add(1)
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.hold {
				return nil
			}
			clientID := req.ClientMessageID
			if f.dropClientID {
				clientID = ""
			}
			f.messages = append(f.messages, models.ChatMessage{
				ID:              fmt.Sprintf("m%d", len(f.messages)+1),
				GuestID:         req.GuestID,
				Sender:          models.AuthorCustomer,
				CustomerName:    req.CustomerName,
				Message:         req.Message,
				ClientMessageID: clientID,
			})
			return nil
		},
	}
}

func TestChatServiceInitialFetchScopedToGuest(t *testing.T) {
	session := newTestSession(t, "")
	server := &fakeChatLog{messages: []models.ChatMessage{
		{ID: "1", GuestID: session.GuestID(), Sender: models.AuthorAdmin, Message: "Hi there"},
		{ID: "2", GuestID: "someone-else", Message: "not mine"},
	}}

	chat := NewChatService(server.api(), session, ChatOptions{Interval: time.Hour, NewTicker: newManualTicker().factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.Eventually(t, func() bool { return len(chat.Messages()) == 1 }, waitFor, tick)
	assert.Equal(t, "Admin", chat.Messages()[0].DisplayName())
	assert.Equal(t, int32(1), server.lists.Load())
}

func TestChatServiceSendTriggersRefetch(t *testing.T) {
	session := newTestSession(t, "")
	server := &fakeChatLog{}
	chat := NewChatService(server.api(), session, ChatOptions{Interval: time.Hour, NewTicker: newManualTicker().factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.Eventually(t, func() bool { return server.lists.Load() == 1 }, waitFor, tick)

	require.NoError(t, chat.Send(context.Background(), "Jane", "Where is my order?"))
	require.Eventually(t, func() bool { return server.lists.Load() == 2 }, waitFor, tick)

	require.Eventually(t, func() bool {
		msgs := chat.Messages()
		return len(msgs) == 1 && !msgs[0].Pending
	}, waitFor, tick)
	assert.Equal(t, "Where is my order?", chat.Messages()[0].Message)
}

func TestChatServicePendingEchoUntilObserved(t *testing.T) {
	session := newTestSession(t, "")
	server := &fakeChatLog{hold: true}
	ticker := newManualTicker()
	chat := NewChatService(server.api(), session, ChatOptions{Interval: time.Hour, NewTicker: ticker.factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.NoError(t, chat.Send(context.Background(), "Jane", "hello"))
	require.Eventually(t, func() bool { return server.lists.Load() == 2 }, waitFor, tick)

	msgs := chat.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Pending)
	clientID := msgs[0].ClientMessageID

	server.mu.Lock()
	server.messages = append(server.messages, models.ChatMessage{
		ID: "srv-1", GuestID: session.GuestID(), Message: "hello", ClientMessageID: clientID,
	})
	server.mu.Unlock()

	ticker.Tick()
	require.Eventually(t, func() bool {
		msgs := chat.Messages()
		return len(msgs) == 1 && msgs[0].ID == "srv-1" && !msgs[0].Pending
	}, waitFor, tick)
}

func TestChatServiceSendValidation(t *testing.T) {
	server := &fakeChatLog{}
	chat := NewChatService(server.api(), newTestSession(t, ""), ChatOptions{Interval: time.Hour, NewTicker: newManualTicker().factory()})

	err := chat.Send(context.Background(), "  ", "")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"customerName", "message"}, valErr.Fields)
	assert.Equal(t, int32(0), server.posts.Load())
}

func TestChatServiceSendFailureDropsEcho(t *testing.T) {
	api := &MockChatAPI{
		PostChatFunc: func(ctx context.Context, req models.ChatPostRequest) error {
			return &models.NetworkError{StatusCode: 500}
		},
	}
	chat := NewChatService(api, newTestSession(t, ""), ChatOptions{Interval: time.Hour, NewTicker: newManualTicker().factory()})

	err := chat.Send(context.Background(), "Jane", "hello")
	var netErr *models.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Empty(t, chat.Messages())
}

func TestChatServiceFetchErrorKeepsLog(t *testing.T) {
	session := newTestSession(t, "")
	var calls atomic.Int32
	ticker := newManualTicker()
	api := &MockChatAPI{
		ListChatFunc: func(ctx context.Context, guestID string) ([]models.ChatMessage, error) {
			if calls.Add(1) == 1 {
				return []models.ChatMessage{{ID: "1", GuestID: guestID, Message: "hi"}}, nil
			}
			return nil, errors.New("offline")
		},
	}
	chat := NewChatService(api, session, ChatOptions{Interval: time.Hour, NewTicker: ticker.factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.Eventually(t, func() bool { return len(chat.Messages()) == 1 }, waitFor, tick)
	ticker.Tick()
	require.Eventually(t, func() bool { return chat.LastError() != nil }, waitFor, tick)
	assert.Len(t, chat.Messages(), 1)
}

func TestChatServiceOnUpdateAndStop(t *testing.T) {
	server := &fakeChatLog{}
	ticker := newManualTicker()
	chat := NewChatService(server.api(), newTestSession(t, ""), ChatOptions{Interval: time.Hour, NewTicker: ticker.factory()})

	var updates atomic.Int32
	chat.OnUpdate(func([]models.ChatMessage) { updates.Add(1) })

	require.NoError(t, chat.Start(context.Background()))
	require.Eventually(t, func() bool { return updates.Load() == 1 }, waitFor, tick)

	chat.Stop()
	assert.Equal(t, PollStopped, chat.State())
	ticker.Tick()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), updates.Load())
	assert.Equal(t, int32(1), server.lists.Load())
}

func TestChatServiceEchoClearedWithoutClientID(t *testing.T) {
	session := newTestSession(t, "")
	server := &fakeChatLog{dropClientID: true}
	chat := NewChatService(server.api(), session, ChatOptions{Interval: time.Hour, NewTicker: newManualTicker().factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.Eventually(t, func() bool { return server.lists.Load() == 1 }, waitFor, tick)
	require.NoError(t, chat.Send(context.Background(), "Ann", "hi"))

	require.Eventually(t, func() bool {
		msgs := chat.Messages()
		return len(msgs) == 1 && !msgs[0].Pending
	}, waitFor, tick)
	assert.Equal(t, "hi", chat.Messages()[0].Message)
}

func TestChatServiceOldMessageDoesNotClaimEcho(t *testing.T) {
	session := newTestSession(t, "")
	server := &fakeChatLog{dropClientID: true, hold: true, messages: []models.ChatMessage{
		{ID: "old", GuestID: session.GuestID(), Sender: models.AuthorCustomer, CustomerName: "Ann", Message: "hi"},
	}}
	ticker := newManualTicker()
	chat := NewChatService(server.api(), session, ChatOptions{Interval: time.Hour, NewTicker: ticker.factory()})
	require.NoError(t, chat.Start(context.Background()))
	defer chat.Stop()

	require.Eventually(t, func() bool { return len(chat.Messages()) == 1 }, waitFor, tick)

	require.NoError(t, chat.Send(context.Background(), "Ann", "hi"))
	require.Eventually(t, func() bool { return server.lists.Load() == 2 }, waitFor, tick)

	msgs := chat.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Pending)

	server.mu.Lock()
	server.messages = append(server.messages, models.ChatMessage{
		ID: "new", GuestID: session.GuestID(), Sender: models.AuthorCustomer, CustomerName: "Ann", Message: "hi",
	})
	server.mu.Unlock()

	ticker.Tick()
	require.Eventually(t, func() bool {
		msgs := chat.Messages()
		return len(msgs) == 2 && !msgs[1].Pending && msgs[1].ID == "new"
	}, waitFor, tick)
}

func TestReconcileClaimsOneEchoPerMessage(t *testing.T) {
	pending := []models.ChatMessage{
		{GuestID: "g", Message: "ok", ClientMessageID: "c1", Pending: true},
		{GuestID: "g", Message: "ok", ClientMessageID: "c2", Pending: true},
		{GuestID: "g", Message: "bye", ClientMessageID: "c3", Pending: true},
	}
	current := []models.ChatMessage{
		{ID: "1", GuestID: "g", Sender: models.AuthorCustomer, Message: "ok"},
		{ID: "2", GuestID: "g", Sender: models.AuthorAdmin, Message: "bye"},
		{ID: "3", GuestID: "g", Sender: models.AuthorCustomer, Message: "x", ClientMessageID: "c3"},
	}

	kept := reconcile(pending, nil, current)
	require.Len(t, kept, 1)
	assert.Equal(t, "c2", kept[0].ClientMessageID)
}
