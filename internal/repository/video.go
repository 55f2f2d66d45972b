package repository

import (
	"context"

	"hikaye/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	List(ctx context.Context, limit, offset int) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Video{}, id).Error
}
