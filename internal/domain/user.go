package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account holder
type User struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"passwordHash"`
	Created      time.Time `json:"created"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Save(user *User) (*User, error)
	FindByID(id uuid.UUID) (*User, error)
	FindByLogin(login string) (*User, error)
	ExistsByLogin(login string) (bool, error)
	Delete(id uuid.UUID) error
}
