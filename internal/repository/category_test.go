package repository

import (
	"context"
	"regexp"
	"testing"

	"hikaye/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCategoryRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db, nil)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE slug = $1`)).
		WithArgs("oyku", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Öykü", "oyku"))

	category, err := repo.GetBySlug(ctx, "oyku")
	assert.NoError(t, err)
	assert.Equal(t, "Öykü", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting a category must detach its posts, never delete them.
func TestCategoryRepository_Delete_DetachesPosts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db, nil)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(2, "Şiir", "siir"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "category_id"=`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_EnsureCanonical_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db, nil)
	ctx := context.Background()

	// Existing entry: FirstOrCreate finds it and writes nothing.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Öykü", "oyku"))

	// Missing entry: FirstOrCreate inserts it.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	err := repo.EnsureCanonical(ctx, []models.CategorySpec{
		{Slug: "oyku", Name: "Öykü"},
		{Slug: "siir", Name: "Şiir"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
