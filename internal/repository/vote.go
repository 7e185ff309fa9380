package repository

import (
	"context"
	"errors"

	"hearth/internal/cache"
	"hearth/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	UpsertPostVote(ctx context.Context, authorID, postID string, up bool) error
	UpsertCommentVote(ctx context.Context, authorID, commentID string, up bool) error
	GetPostVote(ctx context.Context, authorID, postID string) (*models.Vote, error)
	GetCommentVote(ctx context.Context, authorID, commentID string) (*models.Vote, error)
	CountPostVotes(ctx context.Context, postID string) (*models.VoteCounts, error)
	CountCommentVotes(ctx context.Context, commentID string) (*models.VoteCounts, error)
}

// voteRepository implements VoteRepository
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// UpsertPostVote records or flips a user's stance on a post in one atomic
// statement. The conflict target matches the partial unique index on
// (author_id, post_id), so two racing casts cannot create duplicate rows.
func (r *voteRepository) UpsertPostVote(ctx context.Context, authorID, postID string, up bool) error {
	ctx, finish := instrument(ctx, "votes.upsert_post", "votes")
	defer finish()

	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO votes (id, author_id, post_id, vote, created_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (author_id, post_id) WHERE post_id IS NOT NULL
		 DO UPDATE SET vote = EXCLUDED.vote`,
		uuid.NewString(), authorID, postID, up,
	).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// UpsertCommentVote records or flips a user's stance on a comment atomically.
func (r *voteRepository) UpsertCommentVote(ctx context.Context, authorID, commentID string, up bool) error {
	ctx, finish := instrument(ctx, "votes.upsert_comment", "votes")
	defer finish()

	return r.db.WithContext(ctx).Exec(
		`INSERT INTO votes (id, author_id, comment_id, vote, created_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (author_id, comment_id) WHERE comment_id IS NOT NULL
		 DO UPDATE SET vote = EXCLUDED.vote`,
		uuid.NewString(), authorID, commentID, up,
	).Error
}

// GetPostVote returns the user's vote on the post, or nil if they have not voted.
func (r *voteRepository) GetPostVote(ctx context.Context, authorID, postID string) (*models.Vote, error) {
	ctx, finish := instrument(ctx, "votes.get_post_vote", "votes")
	defer finish()

	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND post_id = ?", authorID, postID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// GetCommentVote returns the user's vote on the comment, or nil if they have not voted.
func (r *voteRepository) GetCommentVote(ctx context.Context, authorID, commentID string) (*models.Vote, error) {
	ctx, finish := instrument(ctx, "votes.get_comment_vote", "votes")
	defer finish()

	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND comment_id = ?", authorID, commentID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) CountPostVotes(ctx context.Context, postID string) (*models.VoteCounts, error) {
	return r.countVotes(ctx, "post_id", postID)
}

func (r *voteRepository) CountCommentVotes(ctx context.Context, commentID string) (*models.VoteCounts, error) {
	return r.countVotes(ctx, "comment_id", commentID)
}

func (r *voteRepository) countVotes(ctx context.Context, column, id string) (*models.VoteCounts, error) {
	ctx, finish := instrument(ctx, "votes.count", "votes")
	defer finish()

	var counts models.VoteCounts
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select(
			"COUNT(*) FILTER (WHERE vote = true) as upvotes, "+
				"COUNT(*) FILTER (WHERE vote = false) as downvotes").
		Where(column+" = ?", id).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
