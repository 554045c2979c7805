package services

import (
	"context"
	"time"

	"listener-api/models"
	"listener-api/repositories"
)

const similarSongsLimit = 10

type SongService interface {
	CreateSong(ctx context.Context, req models.CreateSongRequest) (*models.Song, error)
	GetSongs(ctx context.Context, skip, limit int) ([]models.Song, error)
	GetSong(ctx context.Context, id uint, user *models.User) (*models.SongDetails, error)
	UpdateSong(ctx context.Context, id uint, req models.UpdateSongRequest) (*models.Song, error)
	DeleteSong(ctx context.Context, id uint) error
	SearchSongs(ctx context.Context, params models.SongSearchParams) ([]models.Song, error)
	GetPopularSongs(ctx context.Context, params models.PopularSongsParams) ([]models.Song, error)
	GetFeed(ctx context.Context, user *models.User, skip, limit int) ([]models.Song, error)
	GetSimilarSongs(ctx context.Context, id uint) ([]models.Song, error)
	GetRecentlyPlayed(ctx context.Context, user *models.User, skip, limit int) ([]models.Song, error)
	PlaySong(ctx context.Context, id uint, user *models.User) (*models.UserSong, error)
}

type songService struct {
	songRepo     repositories.SongRepository
	bandRepo     repositories.BandRepository
	blogRepo     repositories.BlogRepository
	tagRepo      repositories.TagRepository
	favoriteRepo repositories.FavoriteRepository
	now          func() time.Time
}

func NewSongService(
	songRepo repositories.SongRepository,
	bandRepo repositories.BandRepository,
	blogRepo repositories.BlogRepository,
	tagRepo repositories.TagRepository,
	favoriteRepo repositories.FavoriteRepository,
) SongService {
	return &songService{
		songRepo:     songRepo,
		bandRepo:     bandRepo,
		blogRepo:     blogRepo,
		tagRepo:      tagRepo,
		favoriteRepo: favoriteRepo,
		now:          time.Now,
	}
}

func (s *songService) checkRefs(ctx context.Context, bandID, blogID *uint) error {
	if bandID != nil {
		ok, err := s.bandRepo.Exists(ctx, *bandID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Band")
		}
	}
	if blogID != nil {
		ok, err := s.blogRepo.Exists(ctx, *blogID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Blog")
		}
	}
	return nil
}

func (s *songService) CreateSong(ctx context.Context, req models.CreateSongRequest) (*models.Song, error) {
	if err := s.checkRefs(ctx, req.BandID, req.BlogID); err != nil {
		return nil, err
	}
	tags, err := loadTags(ctx, s.tagRepo, req.TagIDs)
	if err != nil {
		return nil, err
	}

	song := &models.Song{
		Title:         req.Title,
		Duration:      req.Duration,
		FilePath:      req.FilePath,
		BandID:        req.BandID,
		BlogID:        req.BlogID,
		CoverImageURL: req.CoverImageURL,
		ReleaseDate:   req.ReleaseDate,
		Tags:          tags,
	}
	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *songService) GetSongs(ctx context.Context, skip, limit int) ([]models.Song, error) {
	return s.songRepo.GetMulti(ctx, skip, limit)
}

// GetSong returns the song with its band, blog and the caller's play data.
func (s *songService) GetSong(ctx context.Context, id uint, user *models.User) (*models.SongDetails, error) {
	song, err := s.songRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Song")
	}

	details := &models.SongDetails{Song: *song}
	if song.Band != nil {
		details.Band = &models.NamedRef{ID: song.Band.ID, Name: song.Band.Name}
	}
	if song.Blog != nil {
		details.Blog = &models.NamedRef{ID: song.Blog.ID, Name: song.Blog.Name}
	}

	if user != nil {
		details.UserData = &models.SongUserData{}
		us, err := s.favoriteRepo.Get(ctx, user.ID, id)
		switch {
		case err == nil:
			details.UserData.IsFavorite = us.IsFavorite
			details.UserData.PlayCount = us.PlayCount
			details.UserData.LastPlayed = us.LastPlayed
		case !isNotFound(err):
			return nil, err
		}
	}
	return details, nil
}

func (s *songService) UpdateSong(ctx context.Context, id uint, req models.UpdateSongRequest) (*models.Song, error) {
	song, err := s.songRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Song")
	}
	if err := s.checkRefs(ctx, req.BandID, req.BlogID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		song.Title = *req.Title
	}
	if req.Duration != nil {
		song.Duration = *req.Duration
	}
	if req.FilePath != nil {
		song.FilePath = *req.FilePath
	}
	if req.BandID != nil {
		song.BandID = req.BandID
	}
	if req.BlogID != nil {
		song.BlogID = req.BlogID
	}
	if req.CoverImageURL != nil {
		song.CoverImageURL = req.CoverImageURL
	}
	if req.ReleaseDate != nil {
		song.ReleaseDate = req.ReleaseDate
	}

	var tags *[]models.Tag
	if req.TagIDs != nil {
		loaded, err := loadTags(ctx, s.tagRepo, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &loaded
	}

	if err := s.songRepo.UpdateWithTags(ctx, song, tags); err != nil {
		return nil, err
	}
	updated, err := s.songRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Song")
	}
	return updated, nil
}

func (s *songService) DeleteSong(ctx context.Context, id uint) error {
	ok, err := s.songRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Song")
	}
	return s.songRepo.Delete(ctx, id)
}

func (s *songService) SearchSongs(ctx context.Context, params models.SongSearchParams) ([]models.Song, error) {
	if params.MinDuration != nil && params.MaxDuration != nil && *params.MinDuration > *params.MaxDuration {
		return nil, models.ErrorValidation{Message: "min_duration must not exceed max_duration"}
	}
	return s.songRepo.Search(ctx, params)
}

// periodStart maps a popularity window to its lower bound. all_time has none.
func (s *songService) periodStart(period string) *time.Time {
	var days int
	switch period {
	case models.PeriodWeek:
		days = 7
	case models.PeriodMonth:
		days = 30
	case models.PeriodYear:
		days = 365
	default:
		return nil
	}
	since := s.now().AddDate(0, 0, -days)
	return &since
}

func (s *songService) GetPopularSongs(ctx context.Context, params models.PopularSongsParams) ([]models.Song, error) {
	return s.songRepo.GetPopular(ctx, s.periodStart(params.TimePeriod), params.Skip, params.Limit)
}

// GetFeed lists songs from followed bands and blogs, falling back to the
// all-time popular list when there is nothing to show.
func (s *songService) GetFeed(ctx context.Context, user *models.User, skip, limit int) ([]models.Song, error) {
	songs, err := s.songRepo.GetFeed(ctx, user.ID, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(songs) > 0 || skip > 0 {
		return songs, nil
	}
	return s.songRepo.GetPopular(ctx, nil, skip, limit)
}

func (s *songService) GetSimilarSongs(ctx context.Context, id uint) ([]models.Song, error) {
	song, err := s.songRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Song")
	}
	return s.songRepo.GetSimilar(ctx, song, similarSongsLimit)
}

func (s *songService) GetRecentlyPlayed(ctx context.Context, user *models.User, skip, limit int) ([]models.Song, error) {
	return s.songRepo.GetRecentlyPlayed(ctx, user.ID, skip, limit)
}

func (s *songService) PlaySong(ctx context.Context, id uint, user *models.User) (*models.UserSong, error) {
	ok, err := s.songRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("Song")
	}
	return s.favoriteRepo.RecordPlay(ctx, user.ID, id, s.now())
}
