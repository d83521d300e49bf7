// README: User service: registration, login and profile, issuing access tokens on success.
package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ojoto/internal/logging"
	"ojoto/internal/types"
	"ojoto/internal/validation"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Tokens issues access tokens for a user id.
type Tokens interface {
	Issue(subject, email string) (string, error)
}

type Service struct {
	store      Store
	tokens     Tokens
	bcryptCost int
}

func NewService(store Store, tokens Tokens) *Service {
	return &Service{store: store, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost is used by tests to keep hashing fast.
func (s *Service) WithBcryptCost(cost int) *Service {
	s.bcryptCost = cost
	return s
}

// SubjectOf is the identity string a user's tokens carry.
func SubjectOf(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseSubject is the inverse of SubjectOf; non-numeric subjects are ErrNotFound.
func ParseSubject(subject string) (int64, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *User, error) {
	in.Fullname = strings.TrimSpace(in.Fullname)
	in.Address = strings.TrimSpace(in.Address)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("user: hash password: %w", err)
	}
	u := &User{
		Fullname:     in.Fullname,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return "", nil, types.Invalid("email", "is already registered")
		}
		return "", nil, fmt.Errorf("user: register: %w", err)
	}

	token, err := s.tokens.Issue(SubjectOf(u.ID), u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("user: issue token: %w", err)
	}
	logging.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return token, u, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	u, err := s.store.GetByEmail(ctx, in.Email)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("user: login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(SubjectOf(u.ID), u.Email)
	if err != nil {
		return "", fmt.Errorf("user: issue token: %w", err)
	}
	return token, nil
}

func (s *Service) Profile(ctx context.Context, id int64) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user: profile: %w", err)
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, p ProfilePatch) (*User, error) {
	p.Fullname = trimmed(p.Fullname)
	p.Address = trimmed(p.Address)
	p.PhoneNumber = trimmed(p.PhoneNumber)
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	if p.Fullname == nil && p.Address == nil && p.PhoneNumber == nil {
		return s.Profile(ctx, id)
	}
	u, err := s.store.UpdateProfile(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("user: update profile: %w", err)
	}
	return u, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
