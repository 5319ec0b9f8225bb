package domain

import "time"

type User struct {
	ID           string
	Email        string // unique, case-insensitive key
	Name         string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
