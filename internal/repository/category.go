package repository

import (
	"context"

	"hikaye/internal/cache"
	"hikaye/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	// Delete removes a category and clears (never cascades) the category
	// reference of every dependent post, in one transaction.
	Delete(ctx context.Context, id uint) error
	// EnsureCanonical creates any missing enumeration entries. Idempotent.
	EnsureCanonical(ctx context.Context, specs []models.CategorySpec) error
}

type categoryRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB, c *cache.Cache) CategoryRepository {
	return &categoryRepository{db: db, cache: c}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		r.cache.InvalidateCategory(ctx, category.Slug)
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.cache.Aside(ctx, cache.CategoryKey(slug), &category, cache.CategoryTTL, func() error {
		return r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	var slug string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		slug = category.Slug

		// Dependent posts keep their rows; only the reference is cleared.
		if err := tx.Model(&models.Post{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return err
	}
	r.cache.InvalidateCategory(ctx, slug)
	return nil
}

func (r *categoryRepository) EnsureCanonical(ctx context.Context, specs []models.CategorySpec) error {
	for _, spec := range specs {
		category := models.Category{Name: spec.Name, Slug: spec.Slug}
		if err := r.db.WithContext(ctx).
			Where(models.Category{Slug: spec.Slug}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
