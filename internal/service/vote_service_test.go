package service

import (
	"context"
	"testing"

	"hearth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoteService(voteRepo *voteRepoStub, governor *governorStub) *VoteService {
	return NewVoteService(voteRepo, noopPostRepo(), noopCommentRepo(), governor)
}

func TestVoteService_CastPostVote_RateLimited(t *testing.T) {
	t.Parallel()

	voteRepo := noopVoteRepo()
	voteRepo.upsertPostVoteFn = func(_ context.Context, _, _ string, _ bool) error {
		t.Fatal("throttled votes must not reach the ledger")
		return nil
	}

	svc := newVoteService(voteRepo, denyAll())
	_, err := svc.CastPostVote(context.Background(), CastVoteInput{AuthorID: "voter", TargetID: "post-1", Up: true})
	assertCode(t, err, models.CodeRateLimited)
}

func TestVoteService_CastPostVote_TargetNotFound(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
		return nil, errNotFound
	}

	svc := NewVoteService(noopVoteRepo(), postRepo, noopCommentRepo(), allowAll())
	_, err := svc.CastPostVote(context.Background(), CastVoteInput{AuthorID: "voter", TargetID: "ghost", Up: true})
	assertCode(t, err, models.CodeNotFound)
}

func TestVoteService_CastPostVote_ReturnsFreshCounts(t *testing.T) {
	t.Parallel()

	var gotUp bool
	voteRepo := noopVoteRepo()
	voteRepo.upsertPostVoteFn = func(_ context.Context, authorID, postID string, up bool) error {
		assert.Equal(t, "voter", authorID)
		assert.Equal(t, "post-1", postID)
		gotUp = up
		return nil
	}
	voteRepo.countPostVotesFn = func(_ context.Context, _ string) (*models.VoteCounts, error) {
		return &models.VoteCounts{Upvotes: 4, Downvotes: 1}, nil
	}

	svc := newVoteService(voteRepo, allowAll())
	counts, err := svc.CastPostVote(context.Background(), CastVoteInput{AuthorID: "voter", TargetID: "post-1", Up: true})
	require.NoError(t, err)
	assert.True(t, gotUp)
	assert.Equal(t, 4, counts.Upvotes)
	assert.Equal(t, 1, counts.Downvotes)
}

func TestVoteService_CastCommentVote_Down(t *testing.T) {
	t.Parallel()

	var gotUp bool
	voteRepo := noopVoteRepo()
	voteRepo.upsertCommentVoteFn = func(_ context.Context, _, _ string, up bool) error {
		gotUp = up
		return nil
	}

	svc := newVoteService(voteRepo, allowAll())
	_, err := svc.CastCommentVote(context.Background(), CastVoteInput{AuthorID: "voter", TargetID: "c1", Up: false})
	require.NoError(t, err)
	assert.False(t, gotUp)
}

func TestVoteService_GetPostStance(t *testing.T) {
	t.Parallel()

	t.Run("never voted", func(t *testing.T) {
		t.Parallel()
		svc := newVoteService(noopVoteRepo(), allowAll())
		stance, err := svc.GetPostStance(context.Background(), "voter", "post-1")
		require.NoError(t, err)
		assert.False(t, stance.Voted)
	})

	t.Run("downvoted", func(t *testing.T) {
		t.Parallel()
		voteRepo := noopVoteRepo()
		voteRepo.getPostVoteFn = func(_ context.Context, _, _ string) (*models.Vote, error) {
			return &models.Vote{Vote: false}, nil
		}
		svc := newVoteService(voteRepo, allowAll())
		stance, err := svc.GetPostStance(context.Background(), "voter", "post-1")
		require.NoError(t, err)
		assert.True(t, stance.Voted)
		assert.False(t, stance.Up)
	})
}

func TestVoteService_CountPostVotes_ZeroForUnknownTarget(t *testing.T) {
	t.Parallel()

	svc := newVoteService(noopVoteRepo(), allowAll())
	counts, err := svc.CountPostVotes(context.Background(), "nobody-voted-here")
	require.NoError(t, err)
	assert.Zero(t, counts.Upvotes)
	assert.Zero(t, counts.Downvotes)
}
