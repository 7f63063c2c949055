package models

import "time"

// Product is an inventory item owned by exactly one user and belonging to
// exactly one category. Rack and bin are optional location markers; nil means
// the location is not recorded and serializes as JSON null.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Rack       *string   `json:"rack"`
	Bin        *string   `json:"bin"`
	CategoryID int64     `json:"category_id"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
