package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	Department   string
	Status       UserStatus
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity derives the per-request identity value for this user.
func (u *User) Identity() Identity {
	return Identity{
		SubjectId:  u.Id,
		Role:       u.Role,
		Department: u.Department,
	}
}
