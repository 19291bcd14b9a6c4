package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/testutil"
)

func TestBannerRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	second := &models.Banner{Title: "second", DisplayOrder: 2, Enabled: true}
	first := &models.Banner{Title: "first", DisplayOrder: 1, Enabled: true}
	hidden := &models.Banner{Title: "hidden", DisplayOrder: 0, Enabled: false}
	for _, b := range []*models.Banner{second, first, hidden} {
		require.NoError(t, repo.Create(ctx, b))
	}

	all, err := repo.GetBanners(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "hidden", all[0].Title)

	enabled, err := repo.GetBanners(ctx, true)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, "first", enabled[0].Title)

	first.Enabled = false
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	ok, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
