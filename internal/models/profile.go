package models

import "time"

// Profile holds the free-text bio a user attaches to their externally-owned
// identity. The primary key is the opaque user id itself; rows are upserted.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
