package authors

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shelfmark/shelfmark/pkg/errcodes"
	"github.com/shelfmark/shelfmark/pkg/migrations"
	"github.com/shelfmark/shelfmark/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceCreateAndRetrieveAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	birth := time.Date(1920, 1, 2, 0, 0, 0, 0, time.UTC)
	death := time.Date(1992, 4, 6, 0, 0, 0, 0, time.UTC)

	author := &models.Author{
		FirstName:   "Isaac",
		LastName:    "Asimov",
		DateOfBirth: &birth,
		DateOfDeath: &death,
	}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	require.NotZero(t, author.ID)

	got, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asimov, Isaac", got.DisplayName())

	// Compare as formatted dates; the driver round trip does not preserve the
	// Location of the stored time.
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "1920-01-02", got.DateOfBirth.Format(dateFormat))
	require.NotNil(t, got.DateOfDeath)
	assert.Equal(t, "1992-04-06", got.DateOfDeath.Format(dateFormat))
}

func TestServiceRetrieveAuthor_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveAuthor(context.Background(), 9999)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestServiceListAuthors_PaginatesByTen(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		author := &models.Author{
			FirstName: "Test",
			LastName:  fmt.Sprintf("Author%02d", i),
		}
		require.NoError(t, svc.CreateAuthor(ctx, author))
	}

	limit := DefaultPageSize
	offset := 0
	firstPage, total, err := svc.ListAuthorsWithTotal(ctx, ListAuthorsOptions{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Len(t, firstPage, 10)

	offset = 10
	secondPage, total, err := svc.ListAuthorsWithTotal(ctx, ListAuthorsOptions{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Len(t, secondPage, 3)

	// No overlap across page boundaries.
	assert.NotEqual(t, firstPage[9].ID, secondPage[0].ID)
}

func TestServiceListAuthors_OrdersBySurname(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	for _, name := range [][2]string{
		{"Ursula", "Le Guin"},
		{"Isaac", "Asimov"},
		{"Octavia", "Butler"},
	} {
		author := &models.Author{FirstName: name[0], LastName: name[1]}
		require.NoError(t, svc.CreateAuthor(ctx, author))
	}

	authors, err := svc.ListAuthors(ctx, ListAuthorsOptions{})
	require.NoError(t, err)

	require.Len(t, authors, 3)
	assert.Equal(t, "Asimov", authors[0].LastName)
	assert.Equal(t, "Butler", authors[1].LastName)
	assert.Equal(t, "Le Guin", authors[2].LastName)
}

func TestServiceUpdateAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Jams", LastName: "Joyce"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	author.FirstName = "James"
	require.NoError(t, svc.UpdateAuthor(ctx, author, UpdateAuthorOptions{Columns: []string{"first_name"}}))

	got, err := svc.RetrieveAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "James", got.FirstName)
}

func TestServiceDeleteAuthor_ClearsBookLinks(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Frank", LastName: "Herbert"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	now := time.Now()
	book := &models.Book{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     "Dune",
		AuthorID:  &author.ID,
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))

	_, err = svc.RetrieveAuthor(ctx, author.ID)
	require.Error(t, err)

	// The book survives with its author link cleared.
	reloaded := &models.Book{}
	err = db.NewSelect().Model(reloaded).Where("b.id = ?", book.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AuthorID)
}

func TestServiceGetBookCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{FirstName: "Iain", LastName: "Banks"}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	now := time.Now()
	for _, title := range []string{"Consider Phlebas", "The Player of Games"} {
		book := &models.Book{CreatedAt: now, UpdatedAt: now, Title: title, AuthorID: &author.ID}
		_, err := db.NewInsert().Model(book).Exec(ctx)
		require.NoError(t, err)
	}

	count, err := svc.GetBookCount(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
