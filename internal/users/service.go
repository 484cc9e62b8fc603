package users

import (
	"context"
	"errors"
	"sync"

	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/models"
	"github.com/newsbook/newsbook-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor for stored passwords.
const HashCost = 10

const msgInvalidCredentials = "Invalid credentials"

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// unknown emails still pay for one hash comparison
func compareDummy(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("newsbook-dummy-password"), HashCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// TokenIssuer signs an assertion for an authenticated identity.
type TokenIssuer interface {
	Issue(id models.Identity) (string, error)
}

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful signin.
type Session struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// Service encapsulates user-related business logic
type Service struct {
	repo   UserRepository
	tokens TokenIssuer
	cost   int
}

func NewService(r UserRepository, t TokenIssuer) *Service {
	return &Service{repo: r, tokens: t, cost: HashCost}
}

// Signup registers a new identity and returns its public fields.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.Identity, error) {
	if err := validation.Struct(in); err != nil {
		return models.Identity{}, err
	}
	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.Identity{}, apperr.Internal(err)
	}
	if existing != nil {
		return models.Identity{}, apperr.Conflict("Email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.Identity{}, apperr.Internal(err)
	}
	u := &models.User{Name: in.Name, Email: in.Email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, ErrEmailTaken) {
			return models.Identity{}, apperr.Conflict("Email already registered")
		}
		return models.Identity{}, apperr.Internal(err)
	}
	return u.Public(), nil
}

// Signin checks credentials and issues a token. Unknown email and wrong password fail
// with the same message.
func (s *Service) Signin(ctx context.Context, in SigninInput) (*Session, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		compareDummy(in.Password)
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	id := u.Public()
	token, err := s.tokens.Issue(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{Token: token, User: id}, nil
}
