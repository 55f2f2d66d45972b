package models

import (
	"time"
)

// CommentTargetKind discriminates what a comment is attached to.
type CommentTargetKind string

const (
	// CommentTargetPost marks a comment attached to a post.
	CommentTargetPost CommentTargetKind = "post"
	// CommentTargetVideo marks a comment attached to a video.
	CommentTargetVideo CommentTargetKind = "video"
)

// CommentTarget is the discriminated reference a comment points at.
// Exactly one entity is referenced; the write boundary enforces this.
type CommentTarget struct {
	Kind CommentTargetKind
	ID   uint
}

// Comment is a reader comment attached to exactly one of a post or a video.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorName string    `gorm:"size:120;not null" json:"author_name"`
	PostID     *uint     `gorm:"index" json:"post_id,omitempty"`
	VideoID    *uint     `gorm:"index" json:"video_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// Target returns the comment's discriminated target. The bool is false when
// the row violates the exactly-one invariant (legacy data the sweep has not
// touched yet).
func (c *Comment) Target() (CommentTarget, bool) {
	switch {
	case c.PostID != nil && c.VideoID == nil:
		return CommentTarget{Kind: CommentTargetPost, ID: *c.PostID}, true
	case c.VideoID != nil && c.PostID == nil:
		return CommentTarget{Kind: CommentTargetVideo, ID: *c.VideoID}, true
	}
	return CommentTarget{}, false
}
