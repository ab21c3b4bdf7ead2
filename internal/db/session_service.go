package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

// currentSlot is the primary key of the only session row
const currentSlot = "current"

// SessionStore persists the token/user pair in the local sqlite database
type SessionStore struct {
	db *gorm.DB
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore returns a store backed by db
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns the persisted session, if any
func (s *SessionStore) Load(ctx context.Context) (*session.Session, error) {
	var row models.AuthSession

	err := s.db.WithContext(ctx).Where("slot = ?", currentSlot).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // No session is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	sess := session.Session{
		Token: row.Token,
		User: models.User{
			ID:    row.UserID,
			Name:  row.UserName,
			Email: row.UserEmail,
		},
	}
	if !sess.Valid() {
		return nil, nil // Malformed rows read as signed out
	}

	return &sess, nil
}

// Save replaces the stored session with token and user in one transaction
func (s *SessionStore) Save(ctx context.Context, token string, user models.User) error {
	if !(session.Session{Token: token, User: user}).Valid() {
		return session.ErrInvalidSession
	}

	row := models.AuthSession{
		Slot:      currentSlot,
		Token:     token,
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot = ?", currentSlot).Delete(&models.AuthSession{}).Error; err != nil {
			return fmt.Errorf("failed to replace session: %w", err)
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// Clear removes the stored session. Clearing when signed out is a no-op
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("slot = ?", currentSlot).Delete(&models.AuthSession{}).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
