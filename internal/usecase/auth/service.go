package auth

import (
	"context"
	"errors"
	"strings"

	"shortlist-console/internal/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email")
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgMissingFields      = "Please enter your email and password."
	MsgInvalidEmail       = "Please enter a valid email address."
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Authenticator verifies company credentials. The recruiting API only answers
// with success or failure.
type Authenticator interface {
	Login(ctx context.Context, email, password string) bool
}

type Service struct {
	api Authenticator
}

func NewService(api Authenticator) *Service {
	return &Service{api: api}
}

// Login validates the input locally and then asks the API. It returns the
// normalized email on success.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return "", ErrMissingFields
	}
	if err := validation.Struct(in); err != nil {
		return "", ErrInvalidEmail
	}

	if s.api == nil || !s.api.Login(ctx, in.Email, in.Password) {
		return "", ErrInvalidCredentials
	}
	return in.Email, nil
}

// Message maps a login error to the text shown on the form.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return MsgMissingFields
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgInvalidCredentials
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
