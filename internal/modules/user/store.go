// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	// Create fills in u.ID and u.CreatedAt; ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, p ProfilePatch) (*User, error)
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const userColumns = `id, fullname, address, phone_number, email, password_hash, created_at`

const uniqueViolation = "23505"

func (s *PGStore) Create(ctx context.Context, u *User) error {
	err := s.db.QueryRow(ctx, `
        INSERT INTO users (fullname, address, phone_number, email, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`,
		u.Fullname, u.Address, u.PhoneNumber, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (s *PGStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (s *PGStore) Get(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *PGStore) UpdateProfile(ctx context.Context, id int64, p ProfilePatch) (*User, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE users
        SET fullname     = COALESCE($2, fullname),
            address      = COALESCE($3, address),
            phone_number = COALESCE($4, phone_number)
        WHERE id = $1
        RETURNING `+userColumns,
		id, p.Fullname, p.Address, p.PhoneNumber,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Fullname, &u.Address, &u.PhoneNumber, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
