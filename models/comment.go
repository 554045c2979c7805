package models

import (
	"time"
)

type CommentTargetType string

const (
	TargetSong CommentTargetType = "song"
	TargetBand CommentTargetType = "band"
	TargetBlog CommentTargetType = "blog"
)

func (t CommentTargetType) Valid() bool {
	switch t {
	case TargetSong, TargetBand, TargetBlog:
		return true
	}
	return false
}

// Comment belongs to exactly one of a song, band or blog. TargetType names
// which of SongID, BandID and BlogID is set.
type Comment struct {
	ID         uint              `json:"id" gorm:"primarykey"`
	Content    string            `json:"content" gorm:"type:text;not null"`
	UserID     uint              `json:"user_id" gorm:"index;not null"`
	User       *User             `json:"user,omitempty"`
	TargetType CommentTargetType `json:"target_type" gorm:"size:10;not null"`
	SongID     *uint             `json:"song_id" gorm:"index"`
	BandID     *uint             `json:"band_id" gorm:"index"`
	BlogID     *uint             `json:"blog_id" gorm:"index"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
