package service

import (
	"context"
	"testing"
	"time"

	"hikaye/internal/models"
	"hikaye/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_MergesNewestFirst(t *testing.T) {
	now := time.Now()
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
		assert.True(t, f.OnlyPublished, "the feed only shows published posts")
		return []*models.Post{
			{ID: 1, Title: "Dünkü Öykü", Image: "gorsel.jpg", CreatedAt: now.Add(-24 * time.Hour)},
			{ID: 2, Title: "Eski Öykü", CreatedAt: now.Add(-72 * time.Hour)},
		}, nil
	}
	videoRepo := noopVideoRepo()
	videoRepo.listFn = func(_ context.Context, _, _ int) ([]*models.Video, error) {
		return []*models.Video{
			{ID: 3, Title: "Yeni Söyleşi", YoutubeID: "dQw4w9WgXcQ", CreatedAt: now.Add(-1 * time.Hour)},
		}, nil
	}
	svc := NewFeedService(postRepo, videoRepo, testResolver(t))

	entries, err := svc.Feed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, models.FeedKindVideo, entries[0].Item.FeedKind())
	assert.Equal(t, uint(1), entries[1].Item.FeedID())
	assert.Equal(t, uint(2), entries[2].Item.FeedID())

	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", entries[0].ImageURL)
	assert.Equal(t, "/uploads/gorsel.jpg", entries[1].ImageURL)
	assert.Equal(t, "/uploads/default.jpg", entries[2].ImageURL, "posts without an image show the default")
}

func TestFeed_TruncatesToLimit(t *testing.T) {
	now := time.Now()
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
		var out []*models.Post
		for i := 0; i < f.Limit; i++ {
			out = append(out, &models.Post{ID: uint(i + 1), CreatedAt: now.Add(-time.Duration(i) * time.Hour)})
		}
		return out, nil
	}
	svc := NewFeedService(postRepo, noopVideoRepo(), testResolver(t))

	entries, err := svc.Feed(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
