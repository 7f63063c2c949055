package models

import "time"

// Category is a named grouping of products, globally unique by name.
// Categories have no owner and are never deleted through the API.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
