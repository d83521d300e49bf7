package fakes

import (
	"context"
	"sync"

	"ojoto/internal/modules/contact"
)

type ContactStore struct {
	mu       sync.Mutex
	messages []contact.Message

	Err error
}

func NewContactStore() *ContactStore {
	return &ContactStore{}
}

func (s *ContactStore) Create(_ context.Context, m *contact.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	m.ID = int64(len(s.messages) + 1)
	s.messages = append(s.messages, *m)
	return nil
}

func (s *ContactStore) Messages() []contact.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contact.Message(nil), s.messages...)
}
