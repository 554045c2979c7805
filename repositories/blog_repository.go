package repositories

import (
	"context"

	"listener-api/models"

	"gorm.io/gorm"
)

type BlogRepository interface {
	Repository[models.Blog]
	GetByName(ctx context.Context, name string) (*models.Blog, error)
	GetByURL(ctx context.Context, url string) (*models.Blog, error)
	GetActive(ctx context.Context, skip, limit int) ([]models.Blog, error)
	UpdateWithTags(ctx context.Context, blog *models.Blog, tags *[]models.Tag) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type blogRepository struct {
	baseRepository[models.Blog]
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{newBaseRepository[models.Blog](db, "Tags")}
}

func (r *blogRepository) GetByName(ctx context.Context, name string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&blog).Error
	return &blog, err
}

func (r *blogRepository) GetByURL(ctx context.Context, url string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&blog).Error
	return &blog, err
}

func (r *blogRepository) GetActive(ctx context.Context, skip, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.query(ctx).Where("is_active = ?", true).Order("id").Offset(skip).Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *blogRepository) UpdateWithTags(ctx context.Context, blog *models.Blog, tags *[]models.Tag) error {
	return r.updateWithTags(ctx, blog, tags)
}

func (r *blogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, id)
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Song{}).Where("blog_id = ?", id).Update("blog_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_tags WHERE blog_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.UserBlog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, id).Error
	})
}
