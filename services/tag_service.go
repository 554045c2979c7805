package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

var errDuplicateTag = models.ErrorBadRequest{Message: "Tag with this name already exists"}

type TagService interface {
	CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error)
	GetTags(ctx context.Context, skip, limit int) ([]models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	UpdateTag(ctx context.Context, id uint, req models.UpdateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.Tag, error) {
	_, err := s.tagRepo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, errDuplicateTag
	}
	if !isNotFound(err) {
		return nil, err
	}

	tag := &models.Tag{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, uniqueErr(err, errDuplicateTag.Message)
	}
	return tag, nil
}

func (s *tagService) GetTags(ctx context.Context, skip, limit int) ([]models.Tag, error) {
	return s.tagRepo.GetMulti(ctx, skip, limit)
}

func (s *tagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Tag")
	}
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id uint, req models.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != tag.Name {
		existing, err := s.tagRepo.GetByName(ctx, *req.Name)
		if err == nil && existing.ID != tag.ID {
			return nil, errDuplicateTag
		}
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		tag.Name = *req.Name
	}
	if req.Description != nil {
		tag.Description = req.Description
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, uniqueErr(err, errDuplicateTag.Message)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id uint) error {
	if _, err := s.GetTag(ctx, id); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, id)
}

// loadTags resolves tag ids, failing with 404 when any of them is unknown.
func loadTags(ctx context.Context, tagRepo repositories.TagRepository, ids []uint) ([]models.Tag, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tags, err := tagRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, notFound("Tag")
	}
	return tags, nil
}
