package service

import (
	"context"
	"testing"

	"hikaye/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_CreateVideo(t *testing.T) {
	var created *models.Video
	videoRepo := noopVideoRepo()
	videoRepo.createFn = func(_ context.Context, v *models.Video) error {
		created = v
		return nil
	}
	svc := NewVideoService(videoRepo)
	ctx := context.Background()

	_, err := svc.CreateVideo(ctx, CreateVideoInput{YoutubeID: "dQw4w9WgXcQ"})
	assertValidationError(t, err)

	_, err = svc.CreateVideo(ctx, CreateVideoInput{Title: "Söyleşi", YoutubeID: "not-an-id"})
	assertValidationError(t, err)

	_, err = svc.CreateVideo(ctx, CreateVideoInput{
		Title:     "Söyleşi",
		YoutubeID: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	assertValidationError(t, err)

	video, err := svc.CreateVideo(ctx, CreateVideoInput{Title: " Söyleşi ", YoutubeID: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Söyleşi", video.Title)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", video.ThumbnailURL())
}

func TestVideoService_UpdateVideo_RejectsBadID(t *testing.T) {
	svc := NewVideoService(noopVideoRepo())

	_, err := svc.UpdateVideo(context.Background(), UpdateVideoInput{VideoID: 1, YoutubeID: "kısa"})
	assertValidationError(t, err)
}

func TestCategoryService_CreateCategory_DerivesSlug(t *testing.T) {
	var created *models.Category
	categoryRepo := noopCategoryRepo()
	categoryRepo.createFn = func(_ context.Context, c *models.Category) error {
		created = c
		return nil
	}
	svc := NewCategoryService(categoryRepo)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "Gezi Yazısı"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "gezi-yazisi", created.Slug)

	_, err = svc.CreateCategory(context.Background(), CreateCategoryInput{Name: "  "})
	assertValidationError(t, err)
}
