package repositories

import (
	"context"

	"listener-api/models"

	"gorm.io/gorm"
)

type BandRepository interface {
	Repository[models.Band]
	GetByName(ctx context.Context, name string) (*models.Band, error)
	UpdateWithTags(ctx context.Context, band *models.Band, tags *[]models.Tag) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type bandRepository struct {
	baseRepository[models.Band]
}

func NewBandRepository(db *gorm.DB) BandRepository {
	return &bandRepository{newBaseRepository[models.Band](db, "Tags")}
}

func (r *bandRepository) GetByName(ctx context.Context, name string) (*models.Band, error) {
	var band models.Band
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&band).Error
	return &band, err
}

func (r *bandRepository) UpdateWithTags(ctx context.Context, band *models.Band, tags *[]models.Tag) error {
	return r.updateWithTags(ctx, band, tags)
}

func (r *bandRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, id)
}

// Delete detaches the band's songs and drops its taggings, comments and
// follow rows before removing it.
func (r *bandRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Song{}).Where("band_id = ?", id).Update("band_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM band_tags WHERE band_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("band_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("band_id = ?", id).Delete(&models.UserBand{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Band{}, id).Error
	})
}
