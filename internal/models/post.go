// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a forum post. Author identity lives in the external
// identity provider; AuthorID is an opaque reference resolved at read time.
type Post struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	AuthorID string `gorm:"not null;index" json:"author_id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"size:255;not null" json:"content"`
	// UpvotesCount/DownvotesCount are not persisted; computed at query time
	UpvotesCount   int       `gorm:"->" json:"upvotes_count"`
	DownvotesCount int       `gorm:"->" json:"downvotes_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none is set.
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Edited reports whether the post was modified after creation. There is no
// stored flag; inequality of the two timestamps is the signal.
func (p *Post) Edited() bool {
	return p.UpdatedAt.After(p.CreatedAt)
}
