package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hikaye/internal/models"
	"hikaye/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopCategoryRepo(), testResolver(t))
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{Content: "içerik"})
		assertValidationError(t, err)
	})

	t.Run("whitespace title", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{Title: "   ", Content: "içerik"})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{Title: strings.Repeat("x", 301), Content: "içerik"})
		assertValidationError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{Title: "Başlık"})
		assertValidationError(t, err)
	})
}

func TestPostService_CreatePost_RejectsUnknownCategory(t *testing.T) {
	categoryRepo := noopCategoryRepo()
	categoryRepo.getByIDFn = func(_ context.Context, id uint) (*models.Category, error) {
		return nil, models.NewNotFoundError("Category", id)
	}
	svc := NewPostService(noopPostRepo(), categoryRepo, testResolver(t))

	badID := uint(99)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		Title:      "Başlık",
		Content:    "içerik",
		CategoryID: &badID,
	})
	assertValidationError(t, err)
}

func TestPostService_CreatePost_DerivesSlugAndDefaults(t *testing.T) {
	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		Title:   "Bir Kış Gecesi Öyküsü",
		Content: "içerik",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "bir-kis-gecesi-oykusu", post.Slug)
	assert.True(t, post.Published, "posts publish by default")
	assert.False(t, post.Featured)
}

func TestPostService_GetPost_CountsView(t *testing.T) {
	views := 0
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Hikaye", Image: "gorsel.jpg", Views: 10}, nil
	}
	postRepo.incViewsFn = func(_ context.Context, _ uint) error {
		views++
		return nil
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	view, err := svc.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, views)
	assert.Equal(t, uint(11), view.Post.Views)
	assert.Equal(t, "/uploads/gorsel.jpg", view.Image.URL)
	assert.False(t, view.Image.Fallback)
}

func TestPostService_GetPost_ViewCounterFailureIsSilent(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.incViewsFn = func(_ context.Context, _ uint) error {
		return errors.New("update failed")
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	view, err := svc.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, view)
}

func TestPostService_GetPost_MissingImageServesDefault(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Görselsiz"}, nil
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	view, err := svc.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, view.Image.Fallback)
	assert.Equal(t, "/uploads/default.jpg", view.Image.URL)
}

func TestPostService_ListPosts_FiltersByCategorySlug(t *testing.T) {
	var gotFilter repository.PostFilter
	postRepo := noopPostRepo()
	postRepo.listFn = func(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
		gotFilter = f
		return []*models.Post{{ID: 1, Image: "gorsel.jpg"}}, nil
	}
	categoryRepo := noopCategoryRepo()
	categoryRepo.getBySlug = func(_ context.Context, slug string) (*models.Category, error) {
		require.Equal(t, "siir", slug)
		return &models.Category{ID: 3, Slug: slug}, nil
	}
	svc := NewPostService(postRepo, categoryRepo, testResolver(t))

	views, err := svc.ListPosts(context.Background(), ListPostsInput{
		Limit:         10,
		OnlyPublished: true,
		CategorySlug:  "siir",
	})
	require.NoError(t, err)
	require.NotNil(t, gotFilter.CategoryID)
	assert.Equal(t, uint(3), *gotFilter.CategoryID)
	assert.True(t, gotFilter.OnlyPublished)
	require.Len(t, views, 1)
	assert.Equal(t, "/uploads/gorsel.jpg", views[0].Image.URL)
}

func TestPostService_UpdatePost_PartialFields(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "Eski", Slug: "eski", Content: "eski içerik", Published: true}, nil
	}
	var saved *models.Post
	postRepo.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	published := false
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		PostID:    1,
		Title:     "Yeni Başlık",
		Published: &published,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Yeni Başlık", saved.Title)
	assert.Equal(t, "yeni-baslik", saved.Slug)
	assert.Equal(t, "eski içerik", saved.Content, "untouched fields keep their values")
	assert.False(t, saved.Published)
}

func TestPostService_LikePost_ChecksExistence(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(postRepo, noopCategoryRepo(), testResolver(t))

	err := svc.LikePost(context.Background(), 42)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
