package auth

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

func TestServiceCreateFirstAdminAndAuthenticate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	admin, err := svc.CreateFirstAdmin(ctx, "admin", nil, "password123")
	require.NoError(t, err)
	require.NotNil(t, admin.Role)
	assert.Equal(t, models.RoleAdmin, admin.Role.Name)
	assert.True(t, admin.HasPermission(models.ResourceCirculation, models.OperationWrite))

	// Setup can only happen once.
	_, err = svc.CreateFirstAdmin(ctx, "admin2", nil, "password123")
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "forbidden", codeErr.Code)

	user, err := svc.Authenticate(ctx, "admin", "password123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)

	_, err = svc.Authenticate(ctx, "admin", "wrongpassword")
	require.Error(t, err)
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "unauthorized", codeErr.Code)
}

func TestServiceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-secret")

	user := &models.User{ID: 42, Username: "tokenuser"}
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "tokenuser", claims.Username)

	// A token signed with another secret is rejected.
	other := NewService(db, "other-secret")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("nope", hash))
}
