// README: Contact service validates and stores messages from the public contact form.
package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ojoto/internal/logging"
	"ojoto/internal/validation"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Submit(ctx context.Context, in Input) (*Message, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	m := &Message{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("contact: submit: %w", err)
	}
	logging.FromContext(ctx).Info("contact message stored", "message_id", m.ID)
	return m, nil
}
