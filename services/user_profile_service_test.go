package services

import (
	"context"
	"testing"

	"tradelink_server/models"
	errs "tradelink_server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture() (*UserProfileService, *memProfileStore) {
	store := newMemProfileStore()
	return &UserProfileService{Store: store}, store
}

func TestAddProfile(t *testing.T) {
	service, _ := newProfileFixture()
	ctx := context.Background()

	created, err := service.AddProfile(ctx, models.UserProfile{
		UserID: "trades-1",
		Name:   "Sam",
		Role:   models.RoleTradesman,
		Trade:  "plumber",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.CreatedAt)

	fetched, err := service.GetProfile(ctx, "trades-1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", fetched.Name)
}

func TestAddProfileValidation(t *testing.T) {
	service, _ := newProfileFixture()
	ctx := context.Background()

	_, err := service.AddProfile(ctx, models.UserProfile{Name: "Sam", Role: models.RoleClient})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = service.AddProfile(ctx, models.UserProfile{UserID: "u-1", Name: "Sam", Role: "admin"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateProfileRejectsImmutableFields(t *testing.T) {
	service, _ := newProfileFixture()
	ctx := context.Background()

	_, err := service.AddProfile(ctx, models.UserProfile{UserID: "u-1", Name: "Sam", Role: models.RoleClient})
	require.NoError(t, err)

	_, err = service.UpdateProfile(ctx, "u-1", map[string]string{"role": models.RoleTradesman})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = service.UpdateProfile(ctx, "u-1", map[string]string{})
	assert.ErrorIs(t, err, errs.ErrValidation)

	updated, err := service.UpdateProfile(ctx, "u-1", map[string]string{"name": "Samuel"})
	require.NoError(t, err)
	assert.Equal(t, "Samuel", updated.Name)
}

func TestBrowseTradesmen(t *testing.T) {
	service, store := newProfileFixture()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.UserProfile{UserID: "t-1", Name: "A", Role: models.RoleTradesman, Trade: "plumber", Location: "leeds"}))
	require.NoError(t, store.Put(ctx, &models.UserProfile{UserID: "t-2", Name: "B", Role: models.RoleTradesman, Trade: "electrician", Location: "leeds"}))
	require.NoError(t, store.Put(ctx, &models.UserProfile{UserID: "c-1", Name: "C", Role: models.RoleClient}))

	all, err := service.BrowseTradesmen(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	plumbers, err := service.BrowseTradesmen(ctx, "plumber", "")
	require.NoError(t, err)
	require.Len(t, plumbers, 1)
	assert.Equal(t, "t-1", plumbers[0].UserID)

	none, err := service.BrowseTradesmen(ctx, "plumber", "york")
	require.NoError(t, err)
	assert.Empty(t, none)
}
