package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopp/mysite-backend/domain"
)

func TestPostLikeRepository_Store(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostLikeRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `post_likes`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		like := domain.Like{TargetID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
		require.NoError(t, repo.Store(ctx, &like))
		assert.NotEqual(t, uuid.Nil, like.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Becomes Conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `post_likes`").
			WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
		mock.ExpectRollback()

		like := domain.Like{TargetID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
		err := repo.Store(ctx, &like)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostLikeRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostLikeRepository(db)
	ctx := context.Background()

	targetID := uuid.New()
	userID := uuid.New()

	t.Run("Removed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `post_likes` WHERE post_id = \\? AND user_id = \\?").
			WithArgs(targetID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		removed, err := repo.Delete(ctx, targetID, userID)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing To Remove", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `post_likes` WHERE post_id = \\? AND user_id = \\?").
			WithArgs(targetID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		removed, err := repo.Delete(ctx, targetID, userID)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostLikeRepository_CountAndExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostLikeRepository(db)
	ctx := context.Background()

	targetID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `post_likes` WHERE post_id = \\?").
		WithArgs(targetID).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))

	count, err := repo.Count(ctx, targetID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `post_likes` WHERE post_id = \\? AND user_id = \\?").
		WithArgs(targetID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.Exists(ctx, targetID, userID)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentLikeRepository_Store(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentLikeRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `comment_likes`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		like := domain.Like{TargetID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
		require.NoError(t, repo.Store(ctx, &like))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Becomes Conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `comment_likes`").
			WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
		mock.ExpectRollback()

		like := domain.Like{TargetID: uuid.New(), UserID: uuid.New(), CreatedAt: time.Now()}
		assert.ErrorIs(t, repo.Store(ctx, &like), domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentLikeRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentLikeRepository(db)
	ctx := context.Background()

	targetID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `comment_likes` WHERE comment_id = \\? AND user_id = \\?").
		WithArgs(targetID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Delete(ctx, targetID, userID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
