// Package seed provides helpers to create development and demo data for the
// content engine database. These helpers are intended for local development
// and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"hearth/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and by tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAuthorID returns an opaque user id shaped like the ones the identity
// provider hands out.
func (f *Factory) NewAuthorID() string {
	return fmt.Sprintf("usr_%s", gofakeit.UUID())
}

// backdate returns a timestamp spread over the last maxDays days, so seeded
// content does not all land at the same instant.
func (f *Factory) backdate(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// clip trims s to at most max runes. gofakeit occasionally produces sentences
// longer than the column allows.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// BuildPost constructs an unsaved post for the given author. Optional
// override functions may modify the generated post before use.
func (f *Factory) BuildPost(authorID string, overrides ...func(*models.Post)) *models.Post {
	created := f.backdate(90)
	post := &models.Post{
		AuthorID:  authorID,
		Title:     clip(gofakeit.Sentence(5), 100),
		Content:   clip(gofakeit.Paragraph(1, 2, 8, " "), 255),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// BuildComment constructs an unsaved comment. A nil parent produces a root
// comment. The comment is dated after whatever it answers so listings read
// chronologically.
func (f *Factory) BuildComment(authorID string, post *models.Post, parent *models.Comment) *models.Comment {
	after := post.CreatedAt
	var parentID *string
	if parent != nil {
		after = parent.CreatedAt
		parentID = &parent.ID
	}
	created := after.Add(time.Duration(1+f.rng.Intn(720)) * time.Minute)
	if created.After(time.Now()) {
		created = time.Now()
	}
	return &models.Comment{
		AuthorID:        authorID,
		PostID:          post.ID,
		ParentCommentID: parentID,
		Content:         clip(gofakeit.Sentence(8), 255),
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// BuildProfile constructs an unsaved profile row for the given user id.
func (f *Factory) BuildProfile(userID string) *models.Profile {
	return &models.Profile{
		ID:          userID,
		Description: clip(gofakeit.Sentence(10), 255),
	}
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateCommentsBatch persists multiple comments in a single DB call.
func (f *Factory) CreateCommentsBatch(comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	return f.db.Create(&comments).Error
}

// CreateVotesBatch persists multiple votes in a single DB call. Callers are
// responsible for not producing two votes by the same author on the same
// target; the unique indexes reject duplicates.
func (f *Factory) CreateVotesBatch(votes []*models.Vote) error {
	if len(votes) == 0 {
		return nil
	}
	return f.db.Create(&votes).Error
}

// CreateProfilesBatch persists multiple profiles in a single DB call.
func (f *Factory) CreateProfilesBatch(profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	return f.db.Create(&profiles).Error
}
