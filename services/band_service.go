package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type BandService interface {
	CreateBand(ctx context.Context, req models.CreateBandRequest) (*models.Band, error)
	GetBands(ctx context.Context, skip, limit int) ([]models.Band, error)
	GetBand(ctx context.Context, id uint) (*models.Band, error)
	UpdateBand(ctx context.Context, id uint, req models.UpdateBandRequest) (*models.Band, error)
	DeleteBand(ctx context.Context, id uint) error
	GetBandSongs(ctx context.Context, id uint, skip, limit int) ([]models.Song, error)
}

type bandService struct {
	bandRepo repositories.BandRepository
	songRepo repositories.SongRepository
	tagRepo  repositories.TagRepository
}

func NewBandService(bandRepo repositories.BandRepository, songRepo repositories.SongRepository, tagRepo repositories.TagRepository) BandService {
	return &bandService{
		bandRepo: bandRepo,
		songRepo: songRepo,
		tagRepo:  tagRepo,
	}
}

const errDuplicateBand = "Band with this name already exists"

func (s *bandService) checkName(ctx context.Context, name string, selfID uint) error {
	existing, err := s.bandRepo.GetByName(ctx, name)
	if err == nil && existing.ID != selfID {
		return models.ErrorBadRequest{Message: errDuplicateBand}
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (s *bandService) CreateBand(ctx context.Context, req models.CreateBandRequest) (*models.Band, error) {
	if err := s.checkName(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	tags, err := loadTags(ctx, s.tagRepo, req.TagIDs)
	if err != nil {
		return nil, err
	}

	band := &models.Band{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Tags:        tags,
	}
	if err := s.bandRepo.Create(ctx, band); err != nil {
		return nil, uniqueErr(err, errDuplicateBand)
	}
	return band, nil
}

func (s *bandService) GetBands(ctx context.Context, skip, limit int) ([]models.Band, error) {
	return s.bandRepo.GetMulti(ctx, skip, limit)
}

func (s *bandService) GetBand(ctx context.Context, id uint) (*models.Band, error) {
	band, err := s.bandRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Band")
	}
	return band, nil
}

func (s *bandService) UpdateBand(ctx context.Context, id uint, req models.UpdateBandRequest) (*models.Band, error) {
	band, err := s.GetBand(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := s.checkName(ctx, *req.Name, band.ID); err != nil {
			return nil, err
		}
		band.Name = *req.Name
	}
	if req.Description != nil {
		band.Description = req.Description
	}
	if req.ImageURL != nil {
		band.ImageURL = req.ImageURL
	}

	var tags *[]models.Tag
	if req.TagIDs != nil {
		loaded, err := loadTags(ctx, s.tagRepo, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &loaded
	}

	if err := s.bandRepo.UpdateWithTags(ctx, band, tags); err != nil {
		return nil, uniqueErr(err, errDuplicateBand)
	}
	return s.GetBand(ctx, id)
}

func (s *bandService) DeleteBand(ctx context.Context, id uint) error {
	if _, err := s.GetBand(ctx, id); err != nil {
		return err
	}
	return s.bandRepo.Delete(ctx, id)
}

func (s *bandService) GetBandSongs(ctx context.Context, id uint, skip, limit int) ([]models.Song, error) {
	if _, err := s.GetBand(ctx, id); err != nil {
		return nil, err
	}
	return s.songRepo.GetByBand(ctx, id, skip, limit)
}
