package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakhulsr/go-storefront/app/db/seeders"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/testutil"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

func newSettingsFixture(t *testing.T) (*SettingsService, repositories.SettingRepositoryImpl, *memoryStore) {
	t.Helper()
	db := testutil.NewDB(t)
	log, _ := testutil.NewLogger()
	repo := repositories.NewSettingRepository(db)
	require.NoError(t, repo.InsertDefaults(context.Background(), seeders.DefaultSettings()))

	store := newMemoryStore()
	return NewSettingsService(repo, store, log, nil), repo, store
}

func str(s string) *string { return &s }

func svgLogo() blobstore.Upload {
	return blobstore.Upload{Filename: "logo.svg", ContentType: "image/svg+xml", Data: []byte("<svg/>")}
}

func TestSettingsUpsertLeavesOtherKeys(t *testing.T) {
	svc, _, _ := newSettingsFixture(t)
	ctx := context.Background()

	before, err := svc.GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Upsert(ctx, map[string]*string{"store_name": str("X")}, nil))

	after, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for key, value := range before {
		if key == "store_name" {
			assert.Equal(t, "X", *after[key])
			continue
		}
		assert.Equal(t, value, after[key], key)
	}
}

func TestSettingsUpsertCreatesNewKeys(t *testing.T) {
	svc, _, _ := newSettingsFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, map[string]*string{"tiktok_url": str("https://t.example"), "": str("ignored")}, nil))

	got, err := svc.Get(ctx, "tiktok_url")
	require.NoError(t, err)
	assert.Equal(t, "https://t.example", *got.Value)

	_, err = svc.Get(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSettingsLogoReplacementDeletesOldFile(t *testing.T) {
	svc, _, store := newSettingsFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, nil, func() *blobstore.Upload { l := svgLogo(); return &l }()))
	first, err := svc.Get(ctx, "logo")
	require.NoError(t, err)
	require.True(t, store.has(*first.Value))

	second := blobstore.Upload{Filename: "logo.png", ContentType: "image/png", Data: []byte("png")}
	require.NoError(t, svc.Upsert(ctx, map[string]*string{"store_name_en": str("Shop")}, &second))

	current, err := svc.Get(ctx, "logo")
	require.NoError(t, err)
	assert.NotEqual(t, *first.Value, *current.Value)
	assert.True(t, store.has(*current.Value))
	assert.False(t, store.has(*first.Value))
}

func TestSettingsLogoWinsOverFormField(t *testing.T) {
	svc, _, _ := newSettingsFixture(t)
	ctx := context.Background()

	logo := svgLogo()
	require.NoError(t, svc.Upsert(ctx, map[string]*string{"logo": str("/uploads/forged.png")}, &logo))

	got, err := svc.Get(ctx, "logo")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logo-1.svg", *got.Value)
}

func TestSettingsLogoReplacementKeepsForeignFile(t *testing.T) {
	svc, _, store := newSettingsFixture(t)
	ctx := context.Background()

	productImage, err := store.Save(ctx, "product", jpeg("shirt.jpg"))
	require.NoError(t, err)
	require.NoError(t, svc.Upsert(ctx, map[string]*string{"logo": str(productImage)}, nil))

	logo := svgLogo()
	require.NoError(t, svc.Upsert(ctx, nil, &logo))

	assert.True(t, store.has(productImage))
	got, err := svc.Get(ctx, "logo")
	require.NoError(t, err)
	assert.True(t, store.has(*got.Value))
	assert.False(t, isLogoFile(productImage))
	assert.True(t, isLogoFile(*got.Value))
}

func TestSettingsRejectsBadLogo(t *testing.T) {
	svc, _, store := newSettingsFixture(t)

	pdf := blobstore.Upload{Filename: "logo.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	err := svc.Upsert(context.Background(), map[string]*string{"store_name": str("X")}, &pdf)

	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Zero(t, store.count())

	got, err := svc.Get(context.Background(), "store_name")
	require.NoError(t, err)
	assert.NotEqual(t, "X", *got.Value)
}

func TestSettingsUpsertFailureRemovesNewLogo(t *testing.T) {
	_, repo, store := newSettingsFixture(t)
	log, _ := testutil.NewLogger()
	svc := NewSettingsService(&failingSettingRepo{SettingRepositoryImpl: repo}, store, log, nil)

	logo := svgLogo()
	err := svc.Upsert(context.Background(), nil, &logo)

	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.Zero(t, store.count())
}

func TestSettingsGetNotFound(t *testing.T) {
	svc, _, _ := newSettingsFixture(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
