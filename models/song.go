package models

import (
	"time"
)

type Song struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Title         string    `json:"title" gorm:"index;not null"`
	Duration      int       `json:"duration" gorm:"not null"`
	FilePath      string    `json:"file_path" gorm:"not null"`
	BandID        *uint     `json:"band_id" gorm:"index"`
	Band          *Band     `json:"-"`
	BlogID        *uint     `json:"blog_id" gorm:"index"`
	Blog          *Blog     `json:"-"`
	CoverImageURL *string   `json:"cover_image_url"`
	ReleaseDate   *string   `json:"release_date" gorm:"index"`
	Tags          []Tag     `json:"tags" gorm:"many2many:song_tags;"`
	FavoriteCount int64     `json:"favorite_count" gorm:"->;-:migration"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NamedRef is the compact band/blog reference embedded in song details.
type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SongUserData struct {
	IsFavorite bool       `json:"is_favorite"`
	PlayCount  int        `json:"play_count"`
	LastPlayed *time.Time `json:"last_played"`
}

type SongDetails struct {
	Song
	Band     *NamedRef     `json:"band"`
	Blog     *NamedRef     `json:"blog"`
	UserData *SongUserData `json:"user_data"`
}

type FavoriteSong struct {
	Song
	BandName    *string `json:"band_name"`
	IsFavorited bool    `json:"is_favorited"`
}
