package models

import (
	"time"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
}

// Data to register a new user. Password is the raw one, it is hashed before storing
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// Partial user update
// nil field means "leave as is"
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
