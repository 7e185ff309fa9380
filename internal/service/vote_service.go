package service

import (
	"context"

	"hearth/internal/models"
	"hearth/internal/observability"
	"hearth/internal/ratelimit"
	"hearth/internal/repository"
)

// VoteService manages the vote ledger.
type VoteService struct {
	voteRepo    repository.VoteRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	governor    ratelimit.Governor
}

type CastVoteInput struct {
	AuthorID string
	TargetID string
	Up       bool
}

// Stance is a user's recorded vote on a target. Voted is false when the user
// has never voted on it.
type Stance struct {
	Voted bool `json:"voted"`
	Up    bool `json:"up"`
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	governor ratelimit.Governor,
) *VoteService {
	return &VoteService{
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		governor:    governor,
	}
}

// CastPostVote records or flips the user's stance on a post. Re-casting the
// same direction is a no-op rather than an error.
func (s *VoteService) CastPostVote(ctx context.Context, in CastVoteInput) (*models.VoteCounts, error) {
	if err := admit(ctx, s.governor, in.AuthorID, "cast_vote"); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.TargetID); err != nil {
		return nil, notFound(err, "post", in.TargetID)
	}

	if err := s.voteRepo.UpsertPostVote(ctx, in.AuthorID, in.TargetID, in.Up); err != nil {
		return nil, err
	}
	observability.RecordVote("post", in.Up)

	return s.voteRepo.CountPostVotes(ctx, in.TargetID)
}

// CastCommentVote records or flips the user's stance on a comment.
func (s *VoteService) CastCommentVote(ctx context.Context, in CastVoteInput) (*models.VoteCounts, error) {
	if err := admit(ctx, s.governor, in.AuthorID, "cast_vote"); err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.GetByID(ctx, in.TargetID); err != nil {
		return nil, notFound(err, "comment", in.TargetID)
	}

	if err := s.voteRepo.UpsertCommentVote(ctx, in.AuthorID, in.TargetID, in.Up); err != nil {
		return nil, err
	}
	observability.RecordVote("comment", in.Up)

	return s.voteRepo.CountCommentVotes(ctx, in.TargetID)
}

// GetPostStance returns the user's own vote on a post.
func (s *VoteService) GetPostStance(ctx context.Context, authorID, postID string) (*Stance, error) {
	vote, err := s.voteRepo.GetPostVote(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	return stanceOf(vote), nil
}

// GetCommentStance returns the user's own vote on a comment.
func (s *VoteService) GetCommentStance(ctx context.Context, authorID, commentID string) (*Stance, error) {
	vote, err := s.voteRepo.GetCommentVote(ctx, authorID, commentID)
	if err != nil {
		return nil, err
	}
	return stanceOf(vote), nil
}

// CountPostVotes tallies a post's votes. Unknown targets tally to zero rather
// than erroring, matching the behavior for targets nobody has voted on.
func (s *VoteService) CountPostVotes(ctx context.Context, postID string) (*models.VoteCounts, error) {
	return s.voteRepo.CountPostVotes(ctx, postID)
}

// CountCommentVotes tallies a comment's votes.
func (s *VoteService) CountCommentVotes(ctx context.Context, commentID string) (*models.VoteCounts, error) {
	return s.voteRepo.CountCommentVotes(ctx, commentID)
}

func stanceOf(vote *models.Vote) *Stance {
	if vote == nil {
		return &Stance{}
	}
	return &Stance{Voted: true, Up: vote.Vote}
}
