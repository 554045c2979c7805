package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"listener-api/models"

	"gorm.io/gorm"
)

const (
	favoriteCountColumn = "(SELECT COUNT(*) FROM user_songs fav WHERE fav.song_id = songs.id AND fav.is_favorite = ?) AS favorite_count"

	orderNewest     = "songs.release_date IS NULL, songs.release_date DESC, songs.id DESC"
	orderOldest     = "songs.release_date IS NULL, songs.release_date ASC, songs.id ASC"
	orderPopularity = "favorite_count DESC, songs.id DESC"
)

type SongRepository interface {
	Repository[models.Song]
	GetDetails(ctx context.Context, id uint) (*models.Song, error)
	GetByBand(ctx context.Context, bandID uint, skip, limit int) ([]models.Song, error)
	Search(ctx context.Context, params models.SongSearchParams) ([]models.Song, error)
	GetPopular(ctx context.Context, since *time.Time, skip, limit int) ([]models.Song, error)
	GetFeed(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error)
	GetSimilar(ctx context.Context, song *models.Song, limit int) ([]models.Song, error)
	GetRecentlyPlayed(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error)
	UpdateWithTags(ctx context.Context, song *models.Song, tags *[]models.Tag) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type songRepository struct {
	baseRepository[models.Song]
}

func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepository{newBaseRepository[models.Song](db, "Tags")}
}

// withFavoriteCount selects songs together with their favorite count.
func (r *songRepository) withFavoriteCount(ctx context.Context) *gorm.DB {
	return r.query(ctx).Model(&models.Song{}).Select("songs.*, "+favoriteCountColumn, true)
}

func (r *songRepository) GetMulti(ctx context.Context, skip, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.withFavoriteCount(ctx).Order("songs.id").Offset(skip).Limit(limit).Find(&songs).Error
	return songs, err
}

func (r *songRepository) GetDetails(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	err := r.withFavoriteCount(ctx).
		Preload("Band").
		Preload("Blog").
		Where("songs.id = ?", id).
		First(&song).Error
	return &song, err
}

func (r *songRepository) GetByBand(ctx context.Context, bandID uint, skip, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.withFavoriteCount(ctx).
		Where("songs.band_id = ?", bandID).
		Order(orderNewest).
		Offset(skip).Limit(limit).
		Find(&songs).Error
	return songs, err
}

// Search requires every whitespace separated term of the query to match the
// song title, its band or blog name, or one of its tag names.
func (r *songRepository) Search(ctx context.Context, params models.SongSearchParams) ([]models.Song, error) {
	var songs []models.Song

	query := r.withFavoriteCount(ctx).
		Joins("LEFT JOIN bands ON bands.id = songs.band_id").
		Joins("LEFT JOIN blogs ON blogs.id = songs.blog_id")

	for _, term := range strings.Fields(params.Query) {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where(`(LOWER(songs.title) LIKE ? OR LOWER(bands.name) LIKE ? OR LOWER(blogs.name) LIKE ? OR EXISTS (
			SELECT 1 FROM song_tags st JOIN tags t ON t.id = st.tag_id
			WHERE st.song_id = songs.id AND LOWER(t.name) LIKE ?))`, like, like, like, like)
	}

	if params.BandID != nil {
		query = query.Where("songs.band_id = ?", *params.BandID)
	}
	if params.BlogID != nil {
		query = query.Where("songs.blog_id = ?", *params.BlogID)
	}
	if params.ReleaseYear != nil {
		query = query.Where("songs.release_date LIKE ?", fmt.Sprintf("%04d-%%", *params.ReleaseYear))
	}
	if params.MinDuration != nil {
		query = query.Where("songs.duration >= ?", *params.MinDuration)
	}
	if params.MaxDuration != nil {
		query = query.Where("songs.duration <= ?", *params.MaxDuration)
	}
	for _, tagID := range params.TagIDs {
		query = query.Where("EXISTS (SELECT 1 FROM song_tags st WHERE st.song_id = songs.id AND st.tag_id = ?)", tagID)
	}

	switch params.SortBy {
	case models.SortPopularity:
		query = query.Order(orderPopularity)
	case models.SortOldest:
		query = query.Order(orderOldest)
	default:
		query = query.Order(orderNewest)
	}

	err := query.Offset(params.Skip).Limit(params.Limit).Find(&songs).Error
	return songs, err
}

// GetPopular ranks songs by favorites created at or after since. A nil since
// counts every favorite.
func (r *songRepository) GetPopular(ctx context.Context, since *time.Time, skip, limit int) ([]models.Song, error) {
	var songs []models.Song

	counts := r.db.WithContext(ctx).Model(&models.UserSong{}).
		Select("song_id, COUNT(*) AS cnt").
		Where("is_favorite = ?", true).
		Group("song_id")
	if since != nil {
		counts = counts.Where("created_at >= ?", *since)
	}

	err := r.query(ctx).
		Model(&models.Song{}).
		Select("songs.*, COALESCE(fc.cnt, 0) AS favorite_count").
		Joins("LEFT JOIN (?) fc ON fc.song_id = songs.id", counts).
		Order(orderPopularity).
		Offset(skip).Limit(limit).
		Find(&songs).Error
	return songs, err
}

// GetFeed returns songs from bands and blogs the user currently follows.
func (r *songRepository) GetFeed(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.withFavoriteCount(ctx).
		Where(`(songs.band_id IN (SELECT band_id FROM user_bands WHERE user_id = ? AND is_following = ?)
			OR songs.blog_id IN (SELECT blog_id FROM user_blogs WHERE user_id = ? AND is_following = ?))`,
			userID, true, userID, true).
		Order(orderNewest).
		Offset(skip).Limit(limit).
		Find(&songs).Error
	return songs, err
}

// GetSimilar finds other songs sharing the band, the blog or a tag.
func (r *songRepository) GetSimilar(ctx context.Context, song *models.Song, limit int) ([]models.Song, error) {
	var songs []models.Song

	conds := []string{"EXISTS (SELECT 1 FROM song_tags a JOIN song_tags b ON a.tag_id = b.tag_id WHERE a.song_id = songs.id AND b.song_id = ?)"}
	args := []interface{}{song.ID}
	if song.BandID != nil {
		conds = append(conds, "songs.band_id = ?")
		args = append(args, *song.BandID)
	}
	if song.BlogID != nil {
		conds = append(conds, "songs.blog_id = ?")
		args = append(args, *song.BlogID)
	}

	err := r.withFavoriteCount(ctx).
		Where("songs.id <> ?", song.ID).
		Where("("+strings.Join(conds, " OR ")+")", args...).
		Order(orderPopularity).
		Limit(limit).
		Find(&songs).Error
	return songs, err
}

func (r *songRepository) GetRecentlyPlayed(ctx context.Context, userID uint, skip, limit int) ([]models.Song, error) {
	var songs []models.Song
	err := r.withFavoriteCount(ctx).
		Joins("JOIN user_songs us ON us.song_id = songs.id").
		Where("us.user_id = ? AND us.last_played IS NOT NULL", userID).
		Order("us.last_played DESC, songs.id DESC").
		Offset(skip).Limit(limit).
		Find(&songs).Error
	return songs, err
}

func (r *songRepository) UpdateWithTags(ctx context.Context, song *models.Song, tags *[]models.Tag) error {
	return r.updateWithTags(ctx, song, tags)
}

func (r *songRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, id)
}

// Delete removes the song with its taggings, favorites and comments.
func (r *songRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM song_tags WHERE song_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("song_id = ?", id).Delete(&models.UserSong{}).Error; err != nil {
			return err
		}
		if err := tx.Where("song_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Song{}, id).Error
	})
}
