package usecase

import (
	"context"
	"testing"

	"karigar/internal/data/entity"
	"karigar/internal/dto/request"
	"karigar/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uuidOf(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestGetProfile(t *testing.T) {
	fx := newFixture(t)
	svc := NewUserService(fx.repo, fx.log)
	c1 := fx.seedUser(entity.RoleCustomer, "c1@example.com")

	resp, err := svc.GetProfile(context.Background(), c1)
	require.NoError(t, err)
	assert.Equal(t, "c1@example.com", resp.Email)

	c1.UserID = uuid.New()
	_, err = svc.GetProfile(context.Background(), c1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	fx := newFixture(t)
	svc := NewUserService(fx.repo, fx.log)
	ctx := context.Background()
	admin := fx.seedUser(entity.RoleAdmin, "admin@example.com")
	c1 := fx.seedUser(entity.RoleCustomer, "c1@example.com")
	fx.seedUser(entity.RoleCustomer, "c2@example.com")
	fx.seedUser(entity.RoleProvider, "p1@example.com")

	customers, err := svc.ListUsers(ctx, admin, "customer", &request.PaginatedRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), customers.Pagination.Total)

	everyone, err := svc.ListUsers(ctx, admin, "", &request.PaginatedRequest{Page: 2, PerPage: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), everyone.Pagination.Total)
	assert.Equal(t, 2, everyone.Pagination.TotalPages)
	assert.Len(t, everyone.Data, 1)

	_, err = svc.ListUsers(ctx, admin, "superuser", &request.PaginatedRequest{})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.ListUsers(ctx, c1, "", &request.PaginatedRequest{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDeactivateUser(t *testing.T) {
	fx := newFixture(t)
	svc := NewUserService(fx.repo, fx.log).(*userService)
	svc.now = fixedClock
	ctx := context.Background()
	admin := fx.seedUser(entity.RoleAdmin, "admin@example.com")
	p1 := fx.seedUser(entity.RoleProvider, "p1@example.com")

	assert.ErrorIs(t, svc.DeactivateUser(ctx, p1, admin.UserID.String()), apperror.ErrForbidden)
	assert.ErrorIs(t, svc.DeactivateUser(ctx, admin, admin.UserID.String()), apperror.ErrValidation)
	assert.ErrorIs(t, svc.DeactivateUser(ctx, admin, uuid.NewString()), apperror.ErrNotFound)

	require.NoError(t, svc.DeactivateUser(ctx, admin, p1.UserID.String()))
	require.NoError(t, svc.DeactivateUser(ctx, admin, p1.UserID.String()), "deactivating twice is a no-op")

	stored, err := fx.repo.User.FindByID(ctx, p1.UserID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Inactive providers disappear from the public side
	providers := NewProviderService(fx.repo, fx.log)
	_, err = providers.GetProvider(ctx, p1.UserID.String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
