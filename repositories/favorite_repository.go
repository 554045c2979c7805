package repositories

import (
	"context"
	"errors"
	"time"

	"listener-api/models"

	"gorm.io/gorm"
)

// FavoriteRepository manages user_songs rows: the favorite flag and play
// history of a user for a song.
type FavoriteRepository interface {
	Get(ctx context.Context, userID, songID uint) (*models.UserSong, error)
	Create(ctx context.Context, userSong *models.UserSong) error
	SetFavorite(ctx context.Context, userID, songID uint, favorite bool) error
	Delete(ctx context.Context, userID, songID uint) error
	ListFavoriteSongs(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error)
	RecordPlay(ctx context.Context, userID, songID uint, at time.Time) (*models.UserSong, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Get(ctx context.Context, userID, songID uint) (*models.UserSong, error) {
	var us models.UserSong
	err := r.db.WithContext(ctx).Where("user_id = ? AND song_id = ?", userID, songID).First(&us).Error
	return &us, err
}

func (r *favoriteRepository) Create(ctx context.Context, userSong *models.UserSong) error {
	return r.db.WithContext(ctx).Create(userSong).Error
}

func (r *favoriteRepository) SetFavorite(ctx context.Context, userID, songID uint, favorite bool) error {
	return r.db.WithContext(ctx).Model(&models.UserSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Update("is_favorite", favorite).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, songID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&models.UserSong{}).Error
}

func (r *favoriteRepository) ListFavoriteSongs(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Band").
		Model(&models.Song{}).
		Select("songs.*, "+favoriteCountColumn, true).
		Joins("JOIN user_songs us ON us.song_id = songs.id").
		Where("us.user_id = ? AND us.is_favorite = ?", userID, true).
		Order("us.updated_at DESC, songs.id DESC").
		Offset(skip).Limit(limit).
		Find(&songs).Error
	return songs, err
}

// RecordPlay bumps the play counter, creating the row on first play.
func (r *favoriteRepository) RecordPlay(ctx context.Context, userID, songID uint, at time.Time) (*models.UserSong, error) {
	var us models.UserSong
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&us).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			us = models.UserSong{UserID: userID, SongID: songID, PlayCount: 1, LastPlayed: &at}
			return tx.Create(&us).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&models.UserSong{}).
			Where("user_id = ? AND song_id = ?", userID, songID).
			Updates(map[string]interface{}{
				"play_count":  gorm.Expr("play_count + 1"),
				"last_played": at,
			}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&us).Error
	})
	return &us, err
}
