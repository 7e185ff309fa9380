package repository

import (
	"context"

	"hearth/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListRoots(ctx context.Context, postID string) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentCommentID string) ([]*models.Comment, error)
	GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Comment, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	ctx, finish := instrument(ctx, "comments.create", "comments")
	defer finish()

	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	ctx, finish := instrument(ctx, "comments.get_by_id", "comments")
	defer finish()

	var comment models.Comment
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		First(&comment, "comments.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListRoots returns a post's top-level comments, newest first. The listing
// shares the feed cap; replies are fetched per parent, not here.
func (r *commentRepository) ListRoots(ctx context.Context, postID string) ([]*models.Comment, error) {
	ctx, finish := instrument(ctx, "comments.list_roots", "comments")
	defer finish()

	var comments []*models.Comment
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("post_id = ? AND parent_comment_id IS NULL", postID).
		Order("created_at DESC").
		Limit(FeedLimit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListReplies returns a comment's direct replies, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentCommentID string) ([]*models.Comment, error) {
	ctx, finish := instrument(ctx, "comments.list_replies", "comments")
	defer finish()

	var comments []*models.Comment
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("parent_comment_id = ?", parentCommentID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Comment, error) {
	ctx, finish := instrument(ctx, "comments.get_by_author", "comments")
	defer finish()

	var comments []*models.Comment
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Comment, error) {
	ctx, finish := instrument(ctx, "comments.search", "comments")
	defer finish()

	var comments []*models.Comment
	like := "%" + query + "%"
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("content ILIKE ?", like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// applyVoteCounts adds subqueries to fetch vote tallies in a single query.
func (r *commentRepository) applyVoteCounts(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.comment_id = comments.id AND votes.vote = true) as upvotes_count, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.comment_id = comments.id AND votes.vote = false) as downvotes_count")
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	ctx, finish := instrument(ctx, "comments.update", "comments")
	defer finish()

	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	ctx, finish := instrument(ctx, "comments.delete", "comments")
	defer finish()

	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}
