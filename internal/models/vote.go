package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a user's stance on exactly one target: a post or a comment.
// Vote=true is an upvote, false a downvote. The pair (AuthorID, PostID) and
// the pair (AuthorID, CommentID) are each unique (partial unique indexes,
// created in database.Connect), so casting again toggles the stored row
// instead of accumulating history.
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AuthorID  string    `gorm:"not null;index" json:"author_id"`
	PostID    *string   `gorm:"size:36;index" json:"post_id,omitempty"`
	CommentID *string   `gorm:"size:36;index" json:"comment_id,omitempty"`
	Vote      bool      `gorm:"not null" json:"vote"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns an opaque identifier when none is set.
func (v *Vote) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VoteCounts is the aggregate stance on a single target.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
