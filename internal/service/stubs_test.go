package service

import (
	"context"
	"errors"
	"testing"

	"hearth/internal/identity"
	"hearth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, string) (*models.Post, error)
	listFn          func(context.Context) ([]*models.Post, error)
	getByAuthorIDFn func(context.Context, string, int, int) ([]*models.Post, error)
	searchFn        func(context.Context, string, int, int) ([]*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: "author-1"}, nil
		},
		listFn: func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		getByAuthorIDFn: func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, string) (*models.Comment, error)
	listRootsFn     func(context.Context, string) ([]*models.Comment, error)
	listRepliesFn   func(context.Context, string) ([]*models.Comment, error)
	getByAuthorIDFn func(context.Context, string, int, int) ([]*models.Comment, error)
	searchFn        func(context.Context, string, int, int) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListRoots(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listRootsFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentCommentID string) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentCommentID)
}
func (s *commentRepoStub) GetByAuthorID(ctx context.Context, authorID string, limit, offset int) ([]*models.Comment, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset)
}
func (s *commentRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Comment, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return &models.Comment{ID: id, AuthorID: "author-1", PostID: "post-1"}, nil
		},
		listRootsFn:   func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn: func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		getByAuthorIDFn: func(_ context.Context, _ string, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int) ([]*models.Comment, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	upsertPostVoteFn    func(context.Context, string, string, bool) error
	upsertCommentVoteFn func(context.Context, string, string, bool) error
	getPostVoteFn       func(context.Context, string, string) (*models.Vote, error)
	getCommentVoteFn    func(context.Context, string, string) (*models.Vote, error)
	countPostVotesFn    func(context.Context, string) (*models.VoteCounts, error)
	countCommentVotesFn func(context.Context, string) (*models.VoteCounts, error)
}

func (s *voteRepoStub) UpsertPostVote(ctx context.Context, authorID, postID string, up bool) error {
	return s.upsertPostVoteFn(ctx, authorID, postID, up)
}
func (s *voteRepoStub) UpsertCommentVote(ctx context.Context, authorID, commentID string, up bool) error {
	return s.upsertCommentVoteFn(ctx, authorID, commentID, up)
}
func (s *voteRepoStub) GetPostVote(ctx context.Context, authorID, postID string) (*models.Vote, error) {
	return s.getPostVoteFn(ctx, authorID, postID)
}
func (s *voteRepoStub) GetCommentVote(ctx context.Context, authorID, commentID string) (*models.Vote, error) {
	return s.getCommentVoteFn(ctx, authorID, commentID)
}
func (s *voteRepoStub) CountPostVotes(ctx context.Context, postID string) (*models.VoteCounts, error) {
	return s.countPostVotesFn(ctx, postID)
}
func (s *voteRepoStub) CountCommentVotes(ctx context.Context, commentID string) (*models.VoteCounts, error) {
	return s.countCommentVotesFn(ctx, commentID)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		upsertPostVoteFn:    func(_ context.Context, _, _ string, _ bool) error { return nil },
		upsertCommentVoteFn: func(_ context.Context, _, _ string, _ bool) error { return nil },
		getPostVoteFn:       func(_ context.Context, _, _ string) (*models.Vote, error) { return nil, nil },
		getCommentVoteFn:    func(_ context.Context, _, _ string) (*models.Vote, error) { return nil, nil },
		countPostVotesFn: func(_ context.Context, _ string) (*models.VoteCounts, error) {
			return &models.VoteCounts{}, nil
		},
		countCommentVotesFn: func(_ context.Context, _ string) (*models.VoteCounts, error) {
			return &models.VoteCounts{}, nil
		},
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getFn    func(context.Context, string) (*models.Profile, error)
	upsertFn func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.getFn(ctx, userID)
}
func (s *profileRepoStub) Upsert(ctx context.Context, profile *models.Profile) error {
	return s.upsertFn(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getFn:    func(_ context.Context, _ string) (*models.Profile, error) { return nil, nil },
		upsertFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// governorStub admits or denies every write.
type governorStub struct {
	allow bool
	err   error
	calls int
}

func (g *governorStub) Admit(_ context.Context, _ string) (bool, error) {
	g.calls++
	return g.allow, g.err
}

func allowAll() *governorStub { return &governorStub{allow: true} }
func denyAll() *governorStub  { return &governorStub{allow: false} }

func knownAuthors(ids ...string) *identity.StaticResolver {
	idents := make(map[string]identity.Identity, len(ids))
	for _, id := range ids {
		idents[id] = identity.Identity{ID: id, Username: "user-" + id}
	}
	return identity.NewStaticResolver(idents)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

var errNotFound = gorm.ErrRecordNotFound

var errBoom = errors.New("boom")
