package repositories

import (
	"context"

	"listener-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the CRUD surface shared by every entity keyed by a numeric id.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	Get(ctx context.Context, id uint) (*T, error)
	GetMulti(ctx context.Context, skip, limit int) ([]T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
}

type baseRepository[T any] struct {
	db       *gorm.DB
	preloads []string
}

func newBaseRepository[T any](db *gorm.DB, preloads ...string) baseRepository[T] {
	return baseRepository[T]{db: db, preloads: preloads}
}

func (r *baseRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *baseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *baseRepository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.query(ctx).First(&entity, id).Error
	return &entity, err
}

func (r *baseRepository[T]) GetMulti(ctx context.Context, skip, limit int) ([]T, error) {
	var entities []T
	err := r.query(ctx).Order("id").Offset(skip).Limit(limit).Find(&entities).Error
	return entities, err
}

// Update writes the entity's columns. Associations are left alone.
func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

func (r *baseRepository[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	return r.db.WithContext(ctx).Delete(&entity, id).Error
}

func (r *baseRepository[T]) exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// updateWithTags saves the entity and, when tags is non-nil, replaces its
// Tags association in the same transaction.
func (r *baseRepository[T]) updateWithTags(ctx context.Context, entity *T, tags *[]models.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(entity).Error; err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		assoc := tx.Model(entity).Association("Tags")
		if len(*tags) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(*tags)
	})
}
