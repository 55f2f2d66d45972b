// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"hikaye/internal/cache"
	"hikaye/internal/models"
	"hikaye/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows post listings.
type PostFilter struct {
	Limit         int
	Offset        int
	OnlyPublished bool
	OnlyFeatured  bool
	CategoryID    *uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	IncrementViews(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint) error
	IncrementDislikes(ctx context.Context, id uint) error

	// ListBatch pages through all posts by ascending ID for reconciliation
	// sweeps; soft-deleted rows are skipped, unpublished rows are not.
	ListBatch(ctx context.Context, afterID uint, limit int) ([]*models.Post, error)

	// RecategorizeGuarded sets a post's category reference only if the row
	// still carries the values the sweep observed; returns whether a row
	// changed. Lost races are fine: the concurrent writer saw the same
	// stale input and converged to the same correction.
	RecategorizeGuarded(ctx context.Context, id uint, sawCategoryID *uint, sawLegacy string, newCategoryID *uint) (bool, error)

	// RepairImage rewrites a stale media reference to its canonical form,
	// guarded by the old value. Returns whether a row changed.
	RepairImage(ctx context.Context, id uint, oldRef, newRef string) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db      *gorm.DB
	cache   *cache.Cache
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB, c *cache.Cache) PostRepository {
	return &postRepository{db: db, cache: c, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.FeedKey)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).Preload("Category").First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if filter.OnlyPublished {
		q = q.Where("published = ?", true)
	}
	if filter.OnlyFeatured {
		q = q.Where("featured = ?", true)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	var posts []*models.Post
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	r.cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	r.cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	// Single UPDATE keeps the counter monotonic under concurrent reads.
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.PostKey(id))
	}
	return err
}

func (r *postRepository) IncrementLikes(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.PostKey(id))
	}
	return err
}

func (r *postRepository) IncrementDislikes(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("dislikes", gorm.Expr("dislikes + 1")).Error
	if err == nil {
		r.cache.Invalidate(ctx, cache.PostKey(id))
	}
	return err
}

func (r *postRepository) ListBatch(ctx context.Context, afterID uint, limit int) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list_batch", "posts")()
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) RecategorizeGuarded(ctx context.Context, id uint, sawCategoryID *uint, sawLegacy string, newCategoryID *uint) (bool, error) {
	defer r.metrics.TrackQuery("recategorize", "posts")()
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id)
	if sawCategoryID == nil {
		q = q.Where("category_id IS NULL")
	} else {
		q = q.Where("category_id = ?", *sawCategoryID)
	}
	q = q.Where("category = ? OR category IS NULL AND ? = ''", sawLegacy, sawLegacy)

	res := q.Updates(map[string]interface{}{
		"category_id": newCategoryID,
		"category":    "",
	})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		r.cache.InvalidatePost(ctx, id)
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) RepairImage(ctx context.Context, id uint, oldRef, newRef string) (bool, error) {
	defer r.metrics.TrackQuery("repair_image", "posts")()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND image = ?", id, oldRef).
		UpdateColumn("image", newRef)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		r.cache.InvalidatePost(ctx, id)
	}
	return res.RowsAffected > 0, nil
}
