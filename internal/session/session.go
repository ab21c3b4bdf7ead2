// Package session holds the signed-in state of the console: the bearer
// token issued by the service and the identity it belongs to
//
// Business logic never reaches for ambient state. A Store is created once at
// startup and handed to every component that needs the token, with Load,
// Save and Clear as the only way to read or change it
package session

import (
	"context"
	"errors"

	"github.com/ilhamrafi44/ayp/internal/models"
)

// ErrSessionExpired is returned by workflows that discovered an
// authentication failure. The store has already been cleared when it is seen
var ErrSessionExpired = errors.New("session expired, please sign in again")

// ErrInvalidSession is returned by Save when the pair is incomplete
var ErrInvalidSession = errors.New("session requires a token and a user")

// Session is the token/user pair. The two halves are always set and
// cleared together
type Session struct {
	Token string      `json:"token" yaml:"token"`
	User  models.User `json:"user" yaml:"user"`
}

// Valid reports whether both halves of the pair are present
func (s Session) Valid() bool {
	return s.Token != "" && (s.User.ID != 0 || s.User.Email != "")
}

// Store is the passive boundary to durable client-side storage
//
// Load returns nil, nil when nothing usable is persisted; a malformed record
// reads as absent. A non-nil error means the medium itself failed
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}

// Token returns the stored bearer token, or "" when absent or unreadable
func Token(ctx context.Context, s Store) string {
	if s == nil {
		return ""
	}
	sess, err := s.Load(ctx)
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}
