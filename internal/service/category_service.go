package service

import (
	"context"
	"strings"

	"hikaye/internal/models"
	"hikaye/internal/repository"
)

// CategoryService manages the canonical category set. Creation is open but
// deletion detaches posts rather than cascading; stories survive their
// category.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name string
	Slug string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = models.Slugify(in.Name)
	}

	category := &models.Category{
		Name: strings.TrimSpace(in.Name),
		Slug: slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory removes a category after detaching its posts. Affected posts
// keep existing with a null category reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// EnsureCanonicalCategories upserts the built-in category set. Run at startup
// so the category sweep always has its targets.
func (s *CategoryService) EnsureCanonicalCategories(ctx context.Context) error {
	return s.categoryRepo.EnsureCanonical(ctx, models.CanonicalCategories())
}
