package service

import (
	"context"
	"sort"

	"hikaye/internal/media"
	"hikaye/internal/models"
	"hikaye/internal/repository"
)

// FeedService assembles the mixed front-page feed: published posts and videos
// interleaved newest first, each with a renderable image.
type FeedService struct {
	postRepo  repository.PostRepository
	videoRepo repository.VideoRepository
	resolver  *media.Resolver
}

// FeedEntry is one feed row. Image is always renderable; for posts it is the
// resolved media reference, for videos the derived thumbnail URL.
type FeedEntry struct {
	Item     models.FeedItem
	ImageURL string
}

func NewFeedService(
	postRepo repository.PostRepository,
	videoRepo repository.VideoRepository,
	resolver *media.Resolver,
) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		videoRepo: videoRepo,
		resolver:  resolver,
	}
}

// Feed returns up to limit entries. Both sources are fetched at the full
// limit so the merged ordering never drops a newer item from the shorter
// source.
func (s *FeedService) Feed(ctx context.Context, limit int) ([]FeedEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	posts, err := s.postRepo.List(ctx, repository.PostFilter{Limit: limit, OnlyPublished: true})
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.List(ctx, limit, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]FeedEntry, 0, len(posts)+len(videos))
	for _, post := range posts {
		resolved := s.resolver.Resolve(ctx, post)
		entries = append(entries, FeedEntry{Item: post, ImageURL: resolved.URL})
	}
	for _, video := range videos {
		entries = append(entries, FeedEntry{Item: video, ImageURL: video.ThumbnailURL()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Item.FeedPublishedAt().After(entries[j].Item.FeedPublishedAt())
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
