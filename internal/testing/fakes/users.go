package fakes

import (
	"context"
	"strings"
	"sync"
	"time"

	"ojoto/internal/modules/user"
)

// UserStore is an in-memory user.Store with a case-insensitive unique email.
type UserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]user.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]user.User)}
}

func (s *UserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			c := u
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *UserStore) Get(_ context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id int64, p user.ProfilePatch) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	setString(&u.Fullname, p.Fullname)
	setString(&u.Address, p.Address)
	setString(&u.PhoneNumber, p.PhoneNumber)
	s.users[id] = u
	return &u, nil
}
