package repositories

import (
	"context"

	"listener-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Repository[models.Tag]
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
}

type tagRepository struct {
	baseRepository[models.Tag]
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{newBaseRepository[models.Tag](db)}
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// Delete also removes the tag from every song, band and blog.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"song_tags", "band_tags", "blog_tags"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE tag_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}
