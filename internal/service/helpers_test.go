package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hikaye/internal/media"
	"hikaye/internal/models"
	"hikaye/internal/repository"
	"hikaye/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// postRepoStub is a stub for repository.PostRepository. Methods without an
// assigned fn fall through to the embedded nil interface and panic, which
// flags tests exercising paths they did not mean to.
type postRepoStub struct {
	repository.PostRepository
	createFn   func(context.Context, *models.Post) error
	getByIDFn  func(context.Context, uint) (*models.Post, error)
	getBySlug  func(context.Context, string) (*models.Post, error)
	listFn     func(context.Context, repository.PostFilter) ([]*models.Post, error)
	updateFn   func(context.Context, *models.Post) error
	deleteFn   func(context.Context, uint) error
	incViewsFn func(context.Context, uint) error
	incLikesFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlug(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, f)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incViewsFn(ctx, id)
}
func (s *postRepoStub) IncrementLikes(ctx context.Context, id uint) error {
	return s.incLikesFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getBySlug: func(_ context.Context, _ string) (*models.Post, error) { return &models.Post{ID: 1}, nil },
		listFn: func(_ context.Context, _ repository.PostFilter) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn:   func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:   func(_ context.Context, _ uint) error { return nil },
		incViewsFn: func(_ context.Context, _ uint) error { return nil },
		incLikesFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	repository.CategoryRepository
	createFn  func(context.Context, *models.Category) error
	getByIDFn func(context.Context, uint) (*models.Category, error)
	getBySlug func(context.Context, string) (*models.Category, error)
	listFn    func(context.Context) ([]*models.Category, error)
	deleteFn  func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlug(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "Öykü", Slug: "oyku"}, nil
		},
		getBySlug: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 1, Name: "Öykü", Slug: slug}, nil
		},
		listFn:   func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn  func(context.Context, *models.Video) error
	getByIDFn func(context.Context, uint) (*models.Video, error)
	listFn    func(context.Context, int, int) ([]*models.Video, error)
	updateFn  func(context.Context, *models.Video) error
	deleteFn  func(context.Context, uint) error
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error {
	return s.createFn(ctx, v)
}
func (s *videoRepoStub) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *videoRepoStub) Update(ctx context.Context, v *models.Video) error {
	return s.updateFn(ctx, v)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(_ context.Context, _ *models.Video) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Video, error) {
			return &models.Video{ID: id, YoutubeID: "dQw4w9WgXcQ"}, nil
		},
		listFn:   func(_ context.Context, _, _ int) ([]*models.Video, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Video) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	listByVideoFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByVideoFn(ctx, videoID, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		listByVideoFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// testResolver returns a repair-free resolver over a root holding only the
// default asset and gorsel.jpg.
func testResolver(t *testing.T) *media.Resolver {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)
	for _, name := range []string{"default.jpg", "gorsel.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("img"), 0o644))
	}
	return media.NewResolver(store, nil, media.Options{
		BaseURL:      "/uploads",
		DefaultAsset: "default.jpg",
	})
}
