package repository

import (
	"context"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Body: "Nice post!", PostID: 1, UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE post_id = $1 AND "comments"."deleted_at" IS NULL ORDER BY created_at ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}).
			AddRow(1, "Comment 1", 101).
			AddRow(2, "Comment 2", 102))

	// Preload User for each comment
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2) AND "users"."deleted_at" IS NULL`)).
		WithArgs(101, 102).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(101, "Reader One", "one@example.com").
			AddRow(102, "Reader Two", "two@example.com"))

	comments, err := repo.ListByPost(ctx, 1)
	assert.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Comment 1", comments[0].Body)
	assert.Equal(t, "Reader One", comments[0].User.Name)
	assert.NotEmpty(t, comments[0].User.Gravatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1 AND "comments"."deleted_at" IS NULL ORDER BY "comments"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id", "post_id"}).
				AddRow(1, "Nice post!", 101, 1))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WithArgs(101).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow(101, "Reader", "reader@example.com"))

		comment, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		require.NotNil(t, comment)
		assert.Equal(t, "Nice post!", comment.Body)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing comment is NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1 AND "comments"."deleted_at" IS NULL ORDER BY "comments"."id" LIMIT $2`)).
			WithArgs(9, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		comment, err := repo.GetByID(ctx, 9)
		assert.Nil(t, comment)
		requireAppErrorCode(t, err, models.CodeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
