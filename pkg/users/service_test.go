package users

import (
	"context"
	"database/sql"
	"testing"

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

func getRoleIDByName(ctx context.Context, t *testing.T, db *bun.DB, roleName string) int {
	t.Helper()

	role := new(models.Role)
	err := db.NewSelect().
		Model(role).
		Where("name = ?", roleName).
		Scan(ctx)
	require.NoError(t, err)

	return role.ID
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "member1",
		Password: "password123",
		RoleID:   getRoleIDByName(ctx, t, db, models.RoleMember),
	})
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleMember, user.Role.Name)
	assert.True(t, user.HasPermission(models.ResourceCatalog, models.OperationRead))
	assert.False(t, user.CanMarkReturned())
}

func TestServiceCreate_LibrarianCanMarkReturned(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "librarian1",
		Password: "password123",
		RoleID:   getRoleIDByName(ctx, t, db, models.RoleLibrarian),
	})
	require.NoError(t, err)

	assert.True(t, user.CanMarkReturned())
}

func TestServiceCreate_DuplicateUsername(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	roleID := getRoleIDByName(ctx, t, db, models.RoleMember)

	_, err := svc.Create(ctx, CreateUserOptions{
		Username: "duplicate",
		Password: "password123",
		RoleID:   roleID,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserOptions{
		Username: "Duplicate",
		Password: "password123",
		RoleID:   roleID,
	})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "validation_error", codeErr.Code)
}

func TestServiceResetPassword(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "resetme",
		Password: "password123",
		RoleID:   getRoleIDByName(ctx, t, db, models.RoleMember),
	})
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, user.ID, "newpassword123")
	require.NoError(t, err)

	valid, err := svc.VerifyPassword(ctx, user.ID, "newpassword123")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.VerifyPassword(ctx, user.ID, "password123")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestServiceDeactivate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "deactivate",
		Password: "password123",
		RoleID:   getRoleIDByName(ctx, t, db, models.RoleMember),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, user.ID))

	updated, err := svc.Retrieve(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
