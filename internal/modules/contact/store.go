// README: Contact message store backed by PostgreSQL.
package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, m *Message) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, m *Message) error {
	return s.db.QueryRow(ctx, `
        INSERT INTO contact_messages (name, email, message, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		m.Name, m.Email, m.Message, m.CreatedAt,
	).Scan(&m.ID)
}
