// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/testutil"
)

func TestMediaLifecycle(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()
	owner := "u1"
	ext := "https://www.youtube.com/watch?v=abc"

	items := []*models.MediaItem{
		{ID: "ph1", Category: models.CategoryPhotos, Filename: "1.jpg", Src: "/uploads/photos/1.jpg", UploadedAt: base.Add(-time.Minute)},
		{ID: "ph2", Category: models.CategoryPhotos, Filename: "2.jpg", Src: "/uploads/photos/2.jpg", UserID: &owner, UploadedAt: base},
		{ID: "n1", Category: models.CategoryNews, Title: "Launch", Filename: "n.png", Src: "/uploads/news/n.png", UploadedAt: base},
		{ID: "v1", Category: models.CategoryVideos, Title: "Talk", Filename: "youtube-abc-1", Src: "https://www.youtube.com/embed/abc",
			IsExternal: true, ExternalURL: &ext, UploadedAt: base},
	}
	for _, m := range items {
		require.NoError(t, s.CreateMedia(ctx, m))
	}

	photos, err := s.ListMedia(ctx, models.CategoryPhotos)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "ph2", photos[0].ID, "newest first")
	require.NotNil(t, photos[0].UserID)
	assert.Equal(t, "u1", *photos[0].UserID)
	assert.Nil(t, photos[1].UserID)

	news, err := s.ListMedia(ctx, models.CategoryNews)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Launch", news[0].Title)

	video, err := s.FindMediaByFilename(ctx, models.CategoryVideos, "youtube-abc-1")
	require.NoError(t, err)
	assert.True(t, video.IsExternal)
	require.NotNil(t, video.ExternalURL)
	assert.Equal(t, ext, *video.ExternalURL)

	_, err = s.FindMediaByFilename(ctx, models.CategoryPhotos, "nope.jpg")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, s.DeleteMedia(ctx, models.CategoryPhotos, "ph1"))
	assert.True(t, apperr.Is(s.DeleteMedia(ctx, models.CategoryPhotos, "ph1"), apperr.KindNotFound))

	_, err = s.ListMedia(ctx, "audio")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSuggestions(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, s.CreateSuggestion(ctx, &models.Suggestion{ID: "s1", Message: "first", SubmittedAt: base.Add(-time.Minute)}))
	require.NoError(t, s.CreateSuggestion(ctx, &models.Suggestion{ID: "s2", Message: "second", SubmittedAt: base}))

	list, err := s.ListSuggestions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
}

func TestAdminMessages(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()
	base := time.Now().UTC()

	active, err := s.ActiveAdminMessage(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, s.CreateAdminMessage(ctx, &models.AdminMessage{ID: "m1", Message: "hello", IsActive: true, CreatedAt: base.Add(-time.Minute)}))
	require.NoError(t, s.CreateAdminMessage(ctx, &models.AdminMessage{ID: "m2", Message: "update", IsActive: true, CreatedAt: base}))

	active, err = s.ActiveAdminMessage(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "m2", active.ID)

	all, err := s.ListAdminMessages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsActive)
	assert.False(t, all[1].IsActive, "older message must be deactivated")
}

func TestMergeSettings(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()
	userID := testutil.CreateTestUser(t, conn, "Jane")

	none, err := s.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	now := time.Now().UTC()
	first, err := s.MergeSettings(ctx, userID, models.SettingsPatch{
		"colors": {"primary": "#111", "secondary": "#222"},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "#111", first.Colors["primary"])
	assert.Equal(t, "#f72585", first.Colors["accent"], "first write starts from defaults")

	_, err = s.MergeSettings(ctx, userID, models.SettingsPatch{
		"colors": {"primary": "#999"},
	}, now.Add(time.Second))
	require.NoError(t, err)

	stored, err := s.GetSettings(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "#999", stored.Colors["primary"])
	assert.Equal(t, "#222", stored.Colors["secondary"])
	assert.Equal(t, "Inter", stored.Fonts["heading"])
	require.NotNil(t, stored.UpdatedAt)
	require.NotNil(t, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(*stored.CreatedAt))

	_, err = s.MergeSettings(ctx, "ghost", models.SettingsPatch{}, now)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMergeSettingsLosesFirstWriteRace(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()
	userID := testutil.CreateTestUser(t, conn, "Jane")
	now := time.Now().UTC()

	_, err := s.MergeSettings(ctx, userID, models.SettingsPatch{
		"colors": {"primary": "#111"},
	}, now)
	require.NoError(t, err)

	// A writer that read no row before the first write committed
	var saved *models.PortfolioSettings
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = saveSettings(ctx, tx, userID, nil, models.SettingsPatch{
			"fonts": {"heading": "Roboto"},
		}, now.Add(time.Second))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "#111", saved.Colors["primary"])
	assert.Equal(t, "Roboto", saved.Fonts["heading"])

	stored, err := s.GetSettings(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "#111", stored.Colors["primary"], "earlier write must survive")
	assert.Equal(t, "Roboto", stored.Fonts["heading"])
}

func TestAnalytics(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()
	ft := "photos"

	for i, typ := range []string{models.EventPageView, models.EventPageView, models.EventFileUpload} {
		ev := &models.AnalyticsEvent{ID: string(rune('a' + i)), EventType: typ, IPHash: "h", CreatedAt: time.Now().UTC()}
		if typ == models.EventFileUpload {
			ev.FileType = &ft
		}
		require.NoError(t, s.RecordEvent(ctx, ev))
	}

	counts, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.EventPageView])
	assert.Equal(t, 1, counts[models.EventFileUpload])

	err = s.RecordEvent(ctx, &models.AnalyticsEvent{ID: "bad", EventType: "bogus", CreatedAt: time.Now().UTC()})
	assert.Error(t, err, "check constraint rejects unknown event types")
}
