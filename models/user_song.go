package models

import (
	"time"
)

// UserSong holds a user's favorite flag and play history for one song.
type UserSong struct {
	UserID     uint       `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	SongID     uint       `json:"song_id" gorm:"primaryKey;autoIncrement:false;index"`
	IsFavorite bool       `json:"is_favorite" gorm:"default:false"`
	PlayCount  int        `json:"play_count" gorm:"default:0"`
	LastPlayed *time.Time `json:"last_played"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
