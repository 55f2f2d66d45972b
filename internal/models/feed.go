package models

import "time"

// FeedItem is the polymorphic view of anything that can appear in the mixed
// content feed. Each concrete entity adapts to it explicitly; there is no
// runtime field probing with defaults.
type FeedItem interface {
	FeedKind() string
	FeedID() uint
	FeedTitle() string
	FeedViews() uint
	FeedPublishedAt() time.Time
	// FeedImage returns the raw media reference for the item; posts return
	// the stored reference (resolved by the caller), videos a derived URL.
	FeedImage() string
}

// FeedKind values.
const (
	FeedKindPost  = "post"
	FeedKindVideo = "video"
)

// FeedKind implements FeedItem.
func (p *Post) FeedKind() string { return FeedKindPost }

// FeedID implements FeedItem.
func (p *Post) FeedID() uint { return p.ID }

// FeedTitle implements FeedItem.
func (p *Post) FeedTitle() string { return p.Title }

// FeedViews implements FeedItem.
func (p *Post) FeedViews() uint { return p.Views }

// FeedPublishedAt implements FeedItem.
func (p *Post) FeedPublishedAt() time.Time { return p.CreatedAt }

// FeedImage implements FeedItem.
func (p *Post) FeedImage() string { return p.Image }

// FeedKind implements FeedItem.
func (v *Video) FeedKind() string { return FeedKindVideo }

// FeedID implements FeedItem.
func (v *Video) FeedID() uint { return v.ID }

// FeedTitle implements FeedItem.
func (v *Video) FeedTitle() string { return v.Title }

// FeedViews implements FeedItem. Videos do not track views.
func (v *Video) FeedViews() uint { return 0 }

// FeedPublishedAt implements FeedItem.
func (v *Video) FeedPublishedAt() time.Time { return v.CreatedAt }

// FeedImage implements FeedItem.
func (v *Video) FeedImage() string { return v.ThumbnailURL() }
