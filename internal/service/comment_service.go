package service

import (
	"context"
	"strings"

	"hikaye/internal/models"
	"hikaye/internal/repository"
)

// CommentService enforces the comment attachment invariant: every comment
// references exactly one existing post or video, checked at write time.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	videoRepo   repository.VideoRepository
}

type CreateCommentInput struct {
	Target     models.CommentTarget
	Content    string
	AuthorName string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	videoRepo repository.VideoRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		videoRepo:   videoRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if strings.TrimSpace(in.AuthorName) == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	if in.Target.ID == 0 {
		return nil, models.NewValidationError("Comment target is required")
	}

	comment := &models.Comment{
		Content:    strings.TrimSpace(in.Content),
		AuthorName: strings.TrimSpace(in.AuthorName),
	}

	switch in.Target.Kind {
	case models.CommentTargetPost:
		if _, err := s.postRepo.GetByID(ctx, in.Target.ID); err != nil {
			return nil, err
		}
		comment.PostID = &in.Target.ID
	case models.CommentTargetVideo:
		if _, err := s.videoRepo.GetByID(ctx, in.Target.ID); err != nil {
			return nil, err
		}
		comment.VideoID = &in.Target.ID
	default:
		return nil, models.NewValidationError("Unknown comment target kind")
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns comments attached to one target, newest first.
func (s *CommentService) ListComments(ctx context.Context, target models.CommentTarget, limit, offset int) ([]*models.Comment, error) {
	switch target.Kind {
	case models.CommentTargetPost:
		return s.commentRepo.ListByPost(ctx, target.ID, limit, offset)
	case models.CommentTargetVideo:
		return s.commentRepo.ListByVideo(ctx, target.ID, limit, offset)
	}
	return nil, models.NewValidationError("Unknown comment target kind")
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
