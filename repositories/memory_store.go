package repositories

import (
	"errors"
	"fmt"

	"storefront/models"
	"storefront/utils"
)

// MemoryStore groups the dev stub's in-memory repositories.
type MemoryStore struct {
	Users  *UserRepository
	Chats  *ChatRepository
	Orders *OrderRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Users:  NewUserRepository(),
		Chats:  NewChatRepository(),
		Orders: NewOrderRepository(),
	}
}

// SeedUser hashes the password and registers the account. An email that is
// already present is left as it is.
func (s *MemoryStore) SeedUser(email, password, role, firstName string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed %s: %w", email, err)
	}

	err = s.Users.Create(&models.User{
		Email:     email,
		Password:  hash,
		Role:      role,
		FirstName: firstName,
	})
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}

func (s *MemoryStore) Stats() models.AdminStats {
	return models.AdminStats{
		Users: s.Users.Count(),
		Chats: s.Chats.CountConversations(),
	}
}
