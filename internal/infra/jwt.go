// README: Local identity provider: HS256 access tokens whose subject is the user id.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// JWTManager issues access tokens and verifies them as a TokenVerifier.
type JWTManager struct {
	cfg JWTConfig
	now func() time.Time
}

func NewJWTManager(cfg JWTConfig) (*JWTManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: empty secret")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("jwt: ttl must be positive")
	}
	return &JWTManager{cfg: cfg, now: time.Now}, nil
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) Issue(subject, email string) (string, error) {
	now := m.now()
	claims := accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

func (m *JWTManager) VerifyIDToken(_ context.Context, idToken string) (*VerifiedToken, error) {
	var claims accessClaims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(idToken, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &VerifiedToken{
		UID:    claims.Subject,
		Claims: map[string]interface{}{"email": claims.Email, "iss": claims.Issuer},
	}, nil
}
