package tokens

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/internal/models"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails signature or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload: subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Service issues and verifies HS256 tokens with a shared secret. It holds no mutable state.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg *config.Config) *Service {
	ttl := cfg.JWT.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(cfg.JWT.Secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the identity, expiring after the configured TTL.
func (s *Service) Issue(id models.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: id.Email,
		Name:  id.Name,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *Service) Verify(_ context.Context, raw string) (*models.Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	// tokens without an expiry are never accepted
	if err != nil || !tok.Valid || claims.ExpiresAt == nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &models.Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
