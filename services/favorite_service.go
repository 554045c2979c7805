package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type FavoriteService interface {
	GetFavorites(ctx context.Context, user *models.User, skip, limit int) ([]models.FavoriteSong, error)
	AddFavorite(ctx context.Context, user *models.User, songID uint) (*models.UserSong, error)
	RemoveFavorite(ctx context.Context, user *models.User, songID uint) error
	IsFavorite(ctx context.Context, user *models.User, songID uint) (bool, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	songRepo     repositories.SongRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, songRepo repositories.SongRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, songRepo: songRepo}
}

func (s *favoriteService) GetFavorites(ctx context.Context, user *models.User, skip, limit int) ([]models.FavoriteSong, error) {
	songs, err := s.favoriteRepo.ListFavoriteSongs(ctx, user.ID, skip, limit)
	if err != nil {
		return nil, err
	}

	favorites := make([]models.FavoriteSong, 0, len(songs))
	for _, song := range songs {
		fav := models.FavoriteSong{Song: song, IsFavorited: true}
		if song.Band != nil {
			name := song.Band.Name
			fav.BandName = &name
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

// AddFavorite is idempotent. An existing play-history row is reused.
func (s *favoriteService) AddFavorite(ctx context.Context, user *models.User, songID uint) (*models.UserSong, error) {
	ok, err := s.songRepo.Exists(ctx, songID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("Song")
	}

	us, err := s.favoriteRepo.Get(ctx, user.ID, songID)
	if isNotFound(err) {
		us = &models.UserSong{UserID: user.ID, SongID: songID, IsFavorite: true}
		if err := s.favoriteRepo.Create(ctx, us); err != nil {
			return nil, err
		}
		return us, nil
	}
	if err != nil {
		return nil, err
	}

	if !us.IsFavorite {
		if err := s.favoriteRepo.SetFavorite(ctx, user.ID, songID, true); err != nil {
			return nil, err
		}
		us.IsFavorite = true
	}
	return us, nil
}

// RemoveFavorite keeps the row when it still carries play history.
func (s *favoriteService) RemoveFavorite(ctx context.Context, user *models.User, songID uint) error {
	us, err := s.favoriteRepo.Get(ctx, user.ID, songID)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if us.PlayCount > 0 {
		return s.favoriteRepo.SetFavorite(ctx, user.ID, songID, false)
	}
	return s.favoriteRepo.Delete(ctx, user.ID, songID)
}

func (s *favoriteService) IsFavorite(ctx context.Context, user *models.User, songID uint) (bool, error) {
	us, err := s.favoriteRepo.Get(ctx, user.ID, songID)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return us.IsFavorite, nil
}
