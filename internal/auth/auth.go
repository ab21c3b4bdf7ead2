// Package auth signs the console in and out
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/session"
)

const loginFailed = "Failed to login"

// Authenticator exchanges credentials for a token. *api.Client satisfies it
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
}

// Credentials as typed into the login form
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Service establishes and destroys the session
type Service struct {
	api      Authenticator
	store    session.Store
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService returns a service persisting sessions into store
func NewService(a Authenticator, store session.Store, log zerolog.Logger) *Service {
	return &Service{api: a, store: store, validate: validator.New(), log: log}
}

// Validate checks the form before anything is sent
func (s *Service) Validate(c Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	if err := s.validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fe := ve[0]
			field := strings.ToLower(fe.Field())
			if fe.Tag() == "email" {
				return fmt.Errorf("%s must be a valid email", field)
			}
			return fmt.Errorf("%s is required", field)
		}
		return err
	}
	return nil
}

// Login validates c, calls the service and saves the token/user pair.
// The error message is always fit for display
func (s *Service) Login(ctx context.Context, c Credentials) (session.Session, error) {
	if err := s.Validate(c); err != nil {
		return session.Session{}, err
	}

	email := strings.TrimSpace(c.Email)
	res, err := s.api.Login(ctx, email, c.Password)
	if err != nil {
		s.log.Warn().Str("email", email).Str("reason", api.Message(err, loginFailed)).Msg("login failed")
		return session.Session{}, errors.New(api.Message(err, loginFailed))
	}

	if err := s.store.Save(ctx, res.Token, res.User); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session")
		return session.Session{}, fmt.Errorf("%s: %w", loginFailed, err)
	}

	s.log.Info().Int("user_id", res.User.ID).Msg("signed in")
	return session.Session{Token: res.Token, User: res.User}, nil
}

// Logout forgets the session. The service is not told; tokens simply
// stop being sent
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	s.log.Info().Msg("signed out")
	return nil
}

// Current returns the stored session, nil when signed out
func (s *Service) Current(ctx context.Context) (*session.Session, error) {
	return s.store.Load(ctx)
}
