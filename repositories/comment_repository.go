package repositories

import (
	"context"

	"listener-api/models"

	"gorm.io/gorm"
)

type CommentFilter struct {
	SongID *uint
	BandID *uint
	BlogID *uint
	UserID *uint
}

type CommentRepository interface {
	Repository[models.Comment]
	List(ctx context.Context, filter CommentFilter, skip, limit int) ([]models.Comment, error)
	ListByTarget(ctx context.Context, targetType models.CommentTargetType, targetID uint, skip, limit int) ([]models.Comment, error)
}

type commentRepository struct {
	baseRepository[models.Comment]
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{newBaseRepository[models.Comment](db, "User")}
}

func (r *commentRepository) List(ctx context.Context, filter CommentFilter, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment

	query := r.query(ctx)
	if filter.SongID != nil {
		query = query.Where("song_id = ?", *filter.SongID)
	}
	if filter.BandID != nil {
		query = query.Where("band_id = ?", *filter.BandID)
	}
	if filter.BlogID != nil {
		query = query.Where("blog_id = ?", *filter.BlogID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	err := query.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByTarget(ctx context.Context, targetType models.CommentTargetType, targetID uint, skip, limit int) ([]models.Comment, error) {
	filter := CommentFilter{}
	switch targetType {
	case models.TargetSong:
		filter.SongID = &targetID
	case models.TargetBand:
		filter.BandID = &targetID
	case models.TargetBlog:
		filter.BlogID = &targetID
	}
	return r.List(ctx, filter, skip, limit)
}
