package models

import (
	"time"
)

// AuthSession is the persisted sign-in state. The table holds at most one
// row, stored under the "current" slot
type AuthSession struct {
	Slot      string    `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Token     string `gorm:"not null"`
	UserID    int    `gorm:"not null"`
	UserName  string
	UserEmail string
}

// User is the identity returned by the login endpoint
type User struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}
