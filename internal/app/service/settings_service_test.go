package service

import (
	"context"
	"testing"
	"time"

	"studio_cms/internal/common"
	"studio_cms/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	stored   *model.SiteSettings
	getCalls int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*model.SiteSettings, error) {
	f.getCalls++
	if f.stored == nil {
		return nil, common.ErrNotFound
	}
	clone := *f.stored
	return &clone, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, settings *model.SiteSettings) error {
	clone := *settings
	f.stored = &clone
	return nil
}

func newSettingsService(t *testing.T) (*SettingsService, *fakeSettingsRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	repo := &fakeSettingsRepo{}
	return NewSettingsService(repo, rdb, 5*time.Minute), repo
}

func validUpdate() UpdateSettingsRequest {
	return UpdateSettingsRequest{
		HeroTitle:    "New Title",
		HeroSubtitle: "New Subtitle",
		AboutText:    "About us.",
		Services:     []string{"signage"},
		ContactEmail: "hello@studio.example",
		ContactPhone: "+1 555 0100",
		SocialLinks:  []model.SocialLink{{Platform: "instagram", URL: "https://instagram.com/studio"}},
	}
}

func TestGetSettingsServesDefaultsWhenUnset(t *testing.T) {
	svc, _ := newSettingsService(t)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteSettings().HeroTitle, settings.HeroTitle)
	assert.NotNil(t, settings.Services)
}

func TestGetSettingsUsesCache(t *testing.T) {
	svc, repo := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	_, err = svc.GetSettings(ctx)
	require.NoError(t, err)

	// Second read comes from the cache, not the store.
	assert.Equal(t, 1, repo.getCalls)
}

func TestUpdateSettingsInvalidatesCache(t *testing.T) {
	svc, repo := newSettingsService(t)
	ctx := context.Background()

	_, err := svc.GetSettings(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateSettings(ctx, validUpdate())
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.HeroTitle)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.HeroTitle)
	assert.Equal(t, 2, repo.getCalls)
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()

	req := validUpdate()
	req.HeroTitle = ""
	_, err := svc.UpdateSettings(ctx, req)
	assert.ErrorIs(t, err, common.ErrValidation)

	req = validUpdate()
	req.ContactEmail = "nope"
	_, err = svc.UpdateSettings(ctx, req)
	assert.ErrorIs(t, err, common.ErrValidation)

	req = validUpdate()
	req.SocialLinks = []model.SocialLink{{Platform: "instagram"}}
	_, err = svc.UpdateSettings(ctx, req)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGetSettingsWithoutRedis(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, nil, time.Minute)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, settings)
}
