package models

import (
	"fmt"
	"regexp"
	"time"
)

// youtubeIDPattern matches the 11-character video identifiers YouTube issues.
var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Video is an embedded YouTube video entry.
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:300;not null" json:"title"`
	YoutubeID   string    `gorm:"size:20;not null" json:"youtube_id"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Video) TableName() string {
	return "videos"
}

// ThumbnailURL derives the video's thumbnail from its YouTube ID.
// Never stored; recomputed on every read.
func (v *Video) ThumbnailURL() string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", v.YoutubeID)
}

// ValidYoutubeID reports whether id has the shape of a YouTube video identifier.
func ValidYoutubeID(id string) bool {
	return youtubeIDPattern.MatchString(id)
}
