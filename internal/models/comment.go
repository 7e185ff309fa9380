package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. A nil ParentCommentID marks a root
// comment; replies carry the id of the comment they answer. Nesting depth is
// unbounded, but the engine only ever serves one level per query.
type Comment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	AuthorID        string    `gorm:"not null;index" json:"author_id"`
	PostID          string    `gorm:"size:36;not null;index" json:"post_id"`
	ParentCommentID *string   `gorm:"size:36;index" json:"parent_comment_id"`
	Content         string    `gorm:"size:255;not null" json:"content"`
	UpvotesCount    int       `gorm:"->" json:"upvotes_count"`
	DownvotesCount  int       `gorm:"->" json:"downvotes_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none is set.
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Edited reports whether the comment was modified after creation, by the
// same timestamp inequality Post uses.
func (c *Comment) Edited() bool {
	return c.UpdatedAt.After(c.CreatedAt)
}

// IsRoot reports whether the comment is attached directly to its post.
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil
}
