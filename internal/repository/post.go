// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"hearth/internal/cache"
	"hearth/internal/models"

	"gorm.io/gorm"
)

// FeedLimit caps the number of posts returned by a single feed query.
const FeedLimit = 100

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, finish := instrument(ctx, "posts.create", "posts")
	defer finish()

	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.FeedKey)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := cache.CacheAside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		ctx, finish := instrument(ctx, "posts.get_by_id", "posts")
		defer finish()
		return r.applyVoteCounts(r.db.WithContext(ctx)).
			First(&post, "posts.id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List serves the feed from a short-lived cache; post writes and post votes
// invalidate it alongside the per-post entries.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.CacheAside(ctx, cache.FeedKey, &posts, cache.FeedTTL, func() error {
		ctx, finish := instrument(ctx, "posts.list", "posts")
		defer finish()
		return r.applyVoteCounts(r.db.WithContext(ctx)).
			Order("created_at DESC").
			Limit(FeedLimit).
			Find(&posts).Error
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	ctx, finish := instrument(ctx, "posts.get_by_author", "posts")
	defer finish()

	var posts []*models.Post
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	ctx, finish := instrument(ctx, "posts.search", "posts")
	defer finish()

	var posts []*models.Post
	like := "%" + query + "%"
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("title ILIKE ? OR content ILIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applyVoteCounts adds subqueries to fetch vote tallies in a single query.
func (r *postRepository) applyVoteCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.post_id = posts.id AND votes.vote = true) as upvotes_count, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.post_id = posts.id AND votes.vote = false) as downvotes_count")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	ctx, finish := instrument(ctx, "posts.update", "posts")
	defer finish()

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	ctx, finish := instrument(ctx, "posts.delete", "posts")
	defer finish()

	if err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
