package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"created_at"`

	// Categories is the derived set of categories this user has products in,
	// each scoped to the user's own products. Computed on every read.
	Categories []UserCategory `json:"categories"`
}

// UserCategory is one entry of a user's derived category view.
type UserCategory struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
