package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"renza-entrega/internal/storage"
)

// Users is the local user registry used by the simulated login.
type Users struct {
	mu      sync.RWMutex
	byEmail map[string]storage.User
}

func NewUsers() *Users {
	return &Users{byEmail: make(map[string]storage.User)}
}

func (u *Users) CreateUser(ctx context.Context, user storage.User) error {
	const op = "storage.memory.CreateUser"

	if err := ctx.Err(); err != nil {
		return err
	}

	key := strings.ToLower(strings.TrimSpace(user.Email))

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.byEmail[key]; ok {
		return fmt.Errorf("%s: %s: %w", op, key, storage.ErrUserExists)
	}
	u.byEmail[key] = user

	return nil
}

func (u *Users) UserByEmail(ctx context.Context, email string) (storage.User, error) {
	const op = "storage.memory.UserByEmail"

	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}

	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return storage.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return user, nil
}
