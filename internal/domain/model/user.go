package model

import (
	"time"
)

// RoleAdmin is the only role the system knows. Every credential is an
// admin; there are no other authorization levels.
const RoleAdmin = "admin"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
