package service

import (
	"context"
	"strings"

	"hikaye/internal/media"
	"hikaye/internal/models"
	"hikaye/internal/repository"
)

// PostService is the write and read boundary for posts. Category references
// are validated here at write time; historical rows that predate this check
// are converged by the reconciliation passes instead.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	resolver     *media.Resolver
}

type CreatePostInput struct {
	Title      string
	Content    string
	Excerpt    string
	CategoryID *uint
	Image      string
	Published  *bool
	Featured   bool
}

type UpdatePostInput struct {
	PostID     uint
	Title      string
	Content    string
	Excerpt    string
	CategoryID *uint
	Image      string
	Published  *bool
	Featured   *bool
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	OnlyPublished bool
	OnlyFeatured  bool
	CategorySlug  string
}

// PostView pairs a post with its resolved media reference, the only form the
// image leaves the service in.
type PostView struct {
	Post  *models.Post
	Image media.Resolved
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	resolver *media.Resolver,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		resolver:     resolver,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 100000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 100000 characters)")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	post := &models.Post{
		Title:      strings.TrimSpace(in.Title),
		Slug:       models.Slugify(in.Title),
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		CategoryID: in.CategoryID,
		Image:      strings.TrimSpace(in.Image),
		Published:  published,
		Featured:   in.Featured,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if len(in.Title) > 300 {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = strings.TrimSpace(in.Title)
		post.Slug = models.Slugify(in.Title)
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Excerpt != "" {
		post.Excerpt = in.Excerpt
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if in.Image != "" {
		post.Image = strings.TrimSpace(in.Image)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost fetches a post for display and counts the view. The view increment
// is best-effort; a failed counter bump never hides the post.
func (s *PostService) GetPost(ctx context.Context, id uint) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementViews(ctx, id); err == nil {
		post.Views++
	}
	return &PostView{Post: post, Image: s.resolver.Resolve(ctx, post)}, nil
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*PostView, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementViews(ctx, post.ID); err == nil {
		post.Views++
	}
	return &PostView{Post: post, Image: s.resolver.Resolve(ctx, post)}, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*PostView, error) {
	filter := repository.PostFilter{
		Limit:         in.Limit,
		Offset:        in.Offset,
		OnlyPublished: in.OnlyPublished,
		OnlyFeatured:  in.OnlyFeatured,
	}
	if in.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, in.CategorySlug)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, &PostView{Post: post, Image: s.resolver.Resolve(ctx, post)})
	}
	return views, nil
}

func (s *PostService) LikePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.IncrementLikes(ctx, id)
}

func (s *PostService) DislikePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.IncrementDislikes(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// checkCategory rejects writes that reference a category that does not exist.
// A nil reference is valid; posts may be uncategorized.
func (s *PostService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.categoryRepo.GetByID(ctx, *id); err != nil {
		return models.NewValidationError("Category does not exist")
	}
	return nil
}
