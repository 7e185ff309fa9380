package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"hearth/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WithArgs("user-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "created_at", "updated_at"}).
			AddRow("user-1", "hello there", now, now))

	profile, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "hello there", profile.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Get_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err, "a user without a saved profile is not an error")
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WithArgs("user-1", "new description").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Profile{ID: "user-1", Description: "new description"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
