package repositories

import (
	"errors"
	"strings"
	"sync"
	"time"

	"storefront/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository keeps the dev stub's accounts in memory.
type UserRepository struct {
	mu      sync.RWMutex
	nextID  int
	byID    map[int]*models.User
	byEmail map[string]int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID:  1,
		byID:    map[int]*models.User{},
		byEmail: map[string]int{},
	}
}

func (r *UserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := r.byEmail[email]; ok {
		return ErrEmailTaken
	}

	now := time.Now()
	user.ID = r.nextID
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[email] = user.ID
	return nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *r.byID[id]
	return &user, nil
}

func (r *UserRepository) FindByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *stored
	return &user, nil
}

func (r *UserRepository) UpdateProfile(id int, req models.UpdateProfileRequest) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	stored.FirstName = req.FirstName
	stored.LastName = req.LastName
	stored.Image = req.Image
	stored.UpdatedAt = time.Now()

	user := *stored
	return &user, nil
}

func (r *UserRepository) UpdatePassword(id int, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	stored.Password = hash
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
