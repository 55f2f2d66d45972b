package service

import (
	"context"
	"strings"

	"hikaye/internal/models"
	"hikaye/internal/repository"
)

// VideoService is the write and read boundary for embedded YouTube videos.
type VideoService struct {
	videoRepo repository.VideoRepository
}

type CreateVideoInput struct {
	Title       string
	YoutubeID   string
	Description string
}

type UpdateVideoInput struct {
	VideoID     uint
	Title       string
	YoutubeID   string
	Description string
}

func NewVideoService(videoRepo repository.VideoRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo}
}

func (s *VideoService) CreateVideo(ctx context.Context, in CreateVideoInput) (*models.Video, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if !models.ValidYoutubeID(in.YoutubeID) {
		return nil, models.NewValidationError("Invalid YouTube video ID")
	}

	video := &models.Video{
		Title:       strings.TrimSpace(in.Title),
		YoutubeID:   in.YoutubeID,
		Description: in.Description,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		video.Title = strings.TrimSpace(in.Title)
	}
	if in.YoutubeID != "" {
		if !models.ValidYoutubeID(in.YoutubeID) {
			return nil, models.NewValidationError("Invalid YouTube video ID")
		}
		video.YoutubeID = in.YoutubeID
	}
	if in.Description != "" {
		video.Description = in.Description
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) GetVideo(ctx context.Context, id uint) (*models.Video, error) {
	return s.videoRepo.GetByID(ctx, id)
}

func (s *VideoService) ListVideos(ctx context.Context, limit, offset int) ([]*models.Video, error) {
	return s.videoRepo.List(ctx, limit, offset)
}

func (s *VideoService) DeleteVideo(ctx context.Context, id uint) error {
	if _, err := s.videoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.videoRepo.Delete(ctx, id)
}
