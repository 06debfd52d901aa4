package loans

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
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

func createTestUser(ctx context.Context, t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	role := new(models.Role)
	err := db.NewSelect().
		Model(role).
		Where("name = ?", models.RoleMember).
		Scan(ctx)
	require.NoError(t, err)

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		PasswordHash: "x",
		RoleID:       role.ID,
		IsActive:     true,
	}
	_, err = db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	return user
}

func createTestBook(ctx context.Context, t *testing.T, db *bun.DB, title string) *models.Book {
	t.Helper()

	now := time.Now()
	book := &models.Book{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return book
}

func createTestCopy(ctx context.Context, t *testing.T, db *bun.DB, bookID int, status string, borrowerID *int, dueBack *time.Time) *models.BookCopy {
	t.Helper()

	now := time.Now()
	bookCopy := &models.BookCopy{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		BookID:     &bookID,
		Imprint:    "Test Imprint, 2026",
		Status:     status,
		BorrowerID: borrowerID,
		DueBack:    dueBack,
	}
	_, err := db.NewInsert().Model(bookCopy).Exec(ctx)
	require.NoError(t, err)

	return bookCopy
}

func daysFromNow(days int) *time.Time {
	d := models.DateOnly(time.Now().AddDate(0, 0, days))
	return &d
}

func TestServiceListLoans_OnlyOnLoanCopies(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "borrower")
	book := createTestBook(ctx, t, db, "The Blind Watchmaker")

	onLoan := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(7))
	createTestCopy(ctx, t, db, book.ID, models.CopyStatusAvailable, nil, nil)

	// A shelf of copies still in processing should never show up as loans.
	for i := 0; i < 30; i++ {
		createTestCopy(ctx, t, db, book.ID, models.CopyStatusMaintenance, nil, nil)
	}

	loans, total, err := svc.ListLoansWithTotal(ctx, ListLoansOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, loans, 1)
	assert.Equal(t, onLoan.ID, loans[0].ID)
	require.NotNil(t, loans[0].Book)
	assert.Equal(t, "The Blind Watchmaker", loans[0].Book.Title)
}

func TestServiceListLoans_FiltersByBorrowerAndOrdersByDueDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice")
	bob := createTestUser(ctx, t, db, "bob")
	book := createTestBook(ctx, t, db, "Perelandra")

	later := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &alice.ID, daysFromNow(14))
	sooner := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &alice.ID, daysFromNow(3))
	createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &bob.ID, daysFromNow(5))

	loans, err := svc.ListLoans(ctx, ListLoansOptions{BorrowerID: &alice.ID})
	require.NoError(t, err)

	require.Len(t, loans, 2)
	assert.Equal(t, sooner.ID, loans[0].ID)
	assert.Equal(t, later.ID, loans[1].ID)
}

func TestServiceRenew_PersistsDueDate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "renewer")
	book := createTestBook(ctx, t, db, "Middlemarch")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(2))

	newDue := models.DateOnly(time.Now().AddDate(0, 0, 21))
	renewed, err := svc.Renew(ctx, bookCopy.ID, newDue)
	require.NoError(t, err)
	require.NotNil(t, renewed.DueBack)
	assert.Equal(t, newDue, *renewed.DueBack)

	reloaded, err := svc.RetrieveCopy(ctx, bookCopy.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.DueBack)
	assert.Equal(t, newDue, models.DateOnly(*reloaded.DueBack))
	assert.Equal(t, models.CopyStatusOnLoan, reloaded.Status)
	assert.Equal(t, &user.ID, reloaded.BorrowerID)
}

func TestServiceRetrieveCopy_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.RetrieveCopy(ctx, uuid.NewString())
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Equal(t, "Copy not found.", codeErr.Message)
}

func TestServiceCheckout(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "checkout")
	book := createTestBook(ctx, t, db, "Annihilation")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusAvailable, nil, nil)

	due := models.DateOnly(time.Now().AddDate(0, 0, 21))
	checked, err := svc.Checkout(ctx, bookCopy.ID, user.ID, due)
	require.NoError(t, err)

	assert.Equal(t, models.CopyStatusOnLoan, checked.Status)
	require.NotNil(t, checked.BorrowerID)
	assert.Equal(t, user.ID, *checked.BorrowerID)
	require.NotNil(t, checked.DueBack)
	assert.Equal(t, due, models.DateOnly(*checked.DueBack))

	// A copy already on loan cannot be checked out again.
	_, err = svc.Checkout(ctx, bookCopy.ID, user.ID, due)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)
}

func TestServiceCheckout_UnknownBorrower(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(ctx, t, db, "Solaris")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusAvailable, nil, nil)

	_, err := svc.Checkout(ctx, bookCopy.ID, 9999, models.DateOnly(time.Now().AddDate(0, 0, 21)))
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestServiceReturn(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "returner")
	book := createTestBook(ctx, t, db, "Piranesi")
	bookCopy := createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(7))

	returned, err := svc.Return(ctx, bookCopy.ID, models.CopyStatusAvailable)
	require.NoError(t, err)

	assert.Equal(t, models.CopyStatusAvailable, returned.Status)
	assert.Nil(t, returned.BorrowerID)
	assert.Nil(t, returned.DueBack)

	// Returning the same copy again conflicts.
	_, err = svc.Return(ctx, bookCopy.ID, models.CopyStatusAvailable)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "conflict", codeErr.Code)
}

func TestServiceListLoans_Pagination(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "pager")
	book := createTestBook(ctx, t, db, "Dune")

	for i := 1; i <= 5; i++ {
		createTestCopy(ctx, t, db, book.ID, models.CopyStatusOnLoan, &user.ID, daysFromNow(i))
	}

	limit := 2
	offset := 2
	loans, total, err := svc.ListLoansWithTotal(ctx, ListLoansOptions{Limit: &limit, Offset: &offset})
	require.NoError(t, err)

	assert.Equal(t, 5, total)
	require.Len(t, loans, 2)
	for i, l := range loans {
		require.NotNil(t, l.DueBack, fmt.Sprintf("loan %d", i))
	}
	assert.True(t, loans[0].DueBack.Before(*loans[1].DueBack))
}
