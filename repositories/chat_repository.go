package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/models"
)

// ChatRepository is the append-only message log served by the dev stub.
type ChatRepository struct {
	mu       sync.RWMutex
	nextID   int
	messages []models.ChatMessage
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{nextID: 1}
}

// Append assigns the id and timestamp and returns the stored copy.
func (r *ChatRepository) Append(msg models.ChatMessage) models.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = fmt.Sprintf("msg-%d", r.nextID)
	msg.CreatedAt = time.Now().UTC()
	r.nextID++
	r.messages = append(r.messages, msg)
	return msg
}

// ListByGuest returns the guest's messages in insertion order.
func (r *ChatRepository) ListByGuest(guestID string) []models.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.ChatMessage{}
	for _, m := range r.messages {
		if m.GuestID == guestID {
			out = append(out, m)
		}
	}
	return out
}

// CountConversations counts distinct guests that have written at least once.
func (r *ChatRepository) CountConversations() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guests := map[string]bool{}
	for _, m := range r.messages {
		guests[m.GuestID] = true
	}
	return len(guests)
}
