package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listener-api/models"

	"gorm.io/gorm"
)

// FollowRepository manages one follow table. R is the row type and O the
// followed entity. Rows are never deleted; unfollowing clears is_following.
type FollowRepository[R any, O any] interface {
	Follow(ctx context.Context, subjectID, objectID uint) (*R, error)
	Unfollow(ctx context.Context, subjectID, objectID uint) error
	IsFollowing(ctx context.Context, subjectID, objectID uint) (bool, error)
	Get(ctx context.Context, subjectID, objectID uint) (*R, error)
	Followers(ctx context.Context, objectID uint, skip, limit int) ([]models.User, error)
	Followed(ctx context.Context, subjectID uint, skip, limit int) ([]O, error)
}

type (
	BandFollowRepository = FollowRepository[models.UserBand, models.Band]
	BlogFollowRepository = FollowRepository[models.UserBlog, models.Blog]
	UserFollowRepository = FollowRepository[models.UserFollow, models.User]
)

type followTable struct {
	name        string
	subjectCol  string
	objectCol   string
	objectTable string
	preloads    []string
}

type followRepository[R any, O any] struct {
	db     *gorm.DB
	table  followTable
	newRow func(subjectID, objectID uint, at time.Time) R
}

func NewBandFollowRepository(db *gorm.DB) BandFollowRepository {
	return &followRepository[models.UserBand, models.Band]{
		db:    db,
		table: followTable{name: "user_bands", subjectCol: "user_id", objectCol: "band_id", objectTable: "bands", preloads: []string{"Tags"}},
		newRow: func(userID, bandID uint, at time.Time) models.UserBand {
			return models.UserBand{UserID: userID, BandID: bandID, IsFollowing: true, FollowedAt: at}
		},
	}
}

func NewBlogFollowRepository(db *gorm.DB) BlogFollowRepository {
	return &followRepository[models.UserBlog, models.Blog]{
		db:    db,
		table: followTable{name: "user_blogs", subjectCol: "user_id", objectCol: "blog_id", objectTable: "blogs", preloads: []string{"Tags"}},
		newRow: func(userID, blogID uint, at time.Time) models.UserBlog {
			return models.UserBlog{UserID: userID, BlogID: blogID, IsFollowing: true, FollowedAt: at}
		},
	}
}

func NewUserFollowRepository(db *gorm.DB) UserFollowRepository {
	return &followRepository[models.UserFollow, models.User]{
		db:    db,
		table: followTable{name: "user_follows", subjectCol: "follower_id", objectCol: "followed_id", objectTable: "users"},
		newRow: func(followerID, followedID uint, at time.Time) models.UserFollow {
			return models.UserFollow{FollowerID: followerID, FollowedID: followedID, IsFollowing: true, FollowedAt: at}
		},
	}
}

func (r *followRepository[R, O]) pair() string {
	return fmt.Sprintf("%s = ? AND %s = ?", r.table.subjectCol, r.table.objectCol)
}

func (r *followRepository[R, O]) Get(ctx context.Context, subjectID, objectID uint) (*R, error) {
	var row R
	err := r.db.WithContext(ctx).Where(r.pair(), subjectID, objectID).First(&row).Error
	return &row, err
}

// Follow creates the row or reactivates an existing one.
func (r *followRepository[R, O]) Follow(ctx context.Context, subjectID, objectID uint) (*R, error) {
	now := time.Now()
	var row R
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(r.pair(), subjectID, objectID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = r.newRow(subjectID, objectID, now)
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		if err := tx.Model(new(R)).Where(r.pair(), subjectID, objectID).
			Updates(map[string]interface{}{"is_following": true, "followed_at": now}).Error; err != nil {
			return err
		}
		return tx.Where(r.pair(), subjectID, objectID).First(&row).Error
	})
	return &row, err
}

func (r *followRepository[R, O]) Unfollow(ctx context.Context, subjectID, objectID uint) error {
	return r.db.WithContext(ctx).Model(new(R)).
		Where(r.pair(), subjectID, objectID).
		Update("is_following", false).Error
}

func (r *followRepository[R, O]) IsFollowing(ctx context.Context, subjectID, objectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(R)).
		Where(r.pair()+" AND is_following = ?", subjectID, objectID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository[R, O]) Followers(ctx context.Context, objectID uint, skip, limit int) ([]models.User, error) {
	var users []models.User
	t := r.table
	err := r.db.WithContext(ctx).
		Select("users.*").
		Joins(fmt.Sprintf("JOIN %s f ON f.%s = users.id", t.name, t.subjectCol)).
		Where(fmt.Sprintf("f.%s = ? AND f.is_following = ?", t.objectCol), objectID, true).
		Order("f.followed_at DESC, users.id").
		Offset(skip).Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *followRepository[R, O]) Followed(ctx context.Context, subjectID uint, skip, limit int) ([]O, error) {
	var objects []O
	t := r.table
	q := r.db.WithContext(ctx)
	for _, p := range t.preloads {
		q = q.Preload(p)
	}
	err := q.Model(new(O)).
		Select(t.objectTable+".*").
		Joins(fmt.Sprintf("JOIN %s f ON f.%s = %s.id", t.name, t.objectCol, t.objectTable)).
		Where(fmt.Sprintf("f.%s = ? AND f.is_following = ?", t.subjectCol), subjectID, true).
		Order(fmt.Sprintf("f.followed_at DESC, %s.id", t.objectTable)).
		Offset(skip).Limit(limit).
		Find(&objects).Error
	return objects, err
}
