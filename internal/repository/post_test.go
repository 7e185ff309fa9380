package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"hearth/internal/cache"
	"hearth/internal/models"
	"hearth/internal/observability"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{AuthorID: "user-1", Title: "Test Post", Content: "Content"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID, "BeforeCreate hook should assign an id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`SELECT posts\.\*, .+ as upvotes_count, .+ as downvotes_count FROM "posts" WHERE posts\.id = \$1`).
		WithArgs("post-1", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "author_id", "title", "content", "upvotes_count", "downvotes_count", "created_at", "updated_at"}).
			AddRow("post-1", "user-1", "Post 1", "body", 5, 2, now, now))

	post, err := repo.GetByID(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, "Post 1", post.Title)
	assert.Equal(t, 5, post.UpvotesCount)
	assert.Equal(t, 2, post.DownvotesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\.\*.+FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\.\*.+FROM "posts" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(FeedLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("p2", "Newer").
			AddRow("p1", "Older"))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListServesFeedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// a single query feeds both calls; the second is a cache hit
	mock.ExpectQuery(`SELECT posts\.\*.+FROM "posts" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(FeedLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("p1", "Cached"))

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	second, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByAuthorIDObservesQueryLatency(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	before := testutil.CollectAndCount(observability.DatabaseQueryLatency)

	mock.ExpectQuery(`SELECT posts\.\*.+WHERE author_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("author-1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p1"))

	_, err := repo.GetByAuthorID(context.Background(), "author-1", 20, 0)
	require.NoError(t, err)
	assert.Greater(t, testutil.CollectAndCount(observability.DatabaseQueryLatency), before)
}

func TestPostRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT posts\.\*.+WHERE title ILIKE \$1 OR content ILIKE \$2`).
		WithArgs("%gopher%", "%gopher%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("p1", "gopher tips"))

	posts, err := repo.Search(context.Background(), "gopher", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "gopher tips", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1`)).
		WithArgs("post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "post-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
