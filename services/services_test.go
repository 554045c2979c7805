package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"listener-api/config"
	"listener-api/models"
	"listener-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	userRepo repositories.UserRepository
	auth     AuthService
	songs    SongService
	tags     TagService
	follows  FollowService
	comments CommentService
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.Require().NoError(config.AutoMigrate(db))
	suite.db = db

	suite.userRepo = repositories.NewUserRepository(db)
	bandRepo := repositories.NewBandRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	songRepo := repositories.NewSongRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	suite.auth = NewAuthService(suite.userRepo, repositories.NewMemoryTokenBlacklist(), TokenConfig{
		Secret:     []byte("unit-secret"),
		Expiration: time.Hour,
	}, zap.NewNop())
	suite.songs = NewSongService(songRepo, bandRepo, blogRepo, tagRepo, repositories.NewFavoriteRepository(db))
	suite.tags = NewTagService(tagRepo)
	suite.follows = NewFollowService(
		repositories.NewUserFollowRepository(db),
		repositories.NewBandFollowRepository(db),
		repositories.NewBlogFollowRepository(db),
		suite.userRepo, bandRepo, blogRepo,
	)
	suite.comments = NewCommentService(repositories.NewCommentRepository(db), songRepo, bandRepo, blogRepo, suite.userRepo)
}

func (suite *ServiceTestSuite) register(username string) *models.User {
	user, err := suite.auth.Register(suite.ctx, models.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *ServiceTestSuite) TestRegisterHashesPassword() {
	user := suite.register("ada")
	suite.NotEqual("password123", user.Password)
	suite.True(user.IsActive)
	suite.False(user.IsSuperuser)
}

func (suite *ServiceTestSuite) TestLoginByUsernameOrEmail() {
	user := suite.register("ada")

	for _, name := range []string{"ada", "ada@example.com"} {
		res, err := suite.auth.Login(suite.ctx, models.LoginRequest{Username: name, Password: "password123"})
		suite.Require().NoError(err, name)
		suite.Equal(TokenTypeBearer, res.TokenType)
		suite.Equal(user.ID, res.User.ID)

		authed, err := suite.auth.Authenticate(suite.ctx, res.AccessToken)
		suite.Require().NoError(err)
		suite.Equal(user.ID, authed.ID)
	}

	_, err := suite.auth.Login(suite.ctx, models.LoginRequest{Username: "nobody", Password: "password123"})
	suite.IsType(models.ErrorUnauthorized{}, err)
}

func (suite *ServiceTestSuite) TestLoginByUsernameContainingAt() {
	user, err := suite.auth.Register(suite.ctx, models.RegisterRequest{
		Email:    "dj@example.com",
		Username: "dj@night",
		Password: "password123",
	})
	suite.Require().NoError(err)

	for _, name := range []string{"dj@night", "dj@example.com"} {
		res, err := suite.auth.Login(suite.ctx, models.LoginRequest{Username: name, Password: "password123"})
		suite.Require().NoError(err, name)
		suite.Equal(user.ID, res.User.ID)
	}
}

// staleUserRepo misses every lookup, as if a concurrent insert had not been
// committed yet when the uniqueness check ran.
type staleUserRepo struct {
	repositories.UserRepository
}

func (staleUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (staleUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type staleTagRepo struct {
	repositories.TagRepository
}

func (staleTagRepo) GetByName(context.Context, string) (*models.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}

type staleBandRepo struct {
	repositories.BandRepository
}

func (staleBandRepo) GetByName(context.Context, string) (*models.Band, error) {
	return nil, gorm.ErrRecordNotFound
}

type staleBlogRepo struct {
	repositories.BlogRepository
}

func (staleBlogRepo) GetByName(context.Context, string) (*models.Blog, error) {
	return nil, gorm.ErrRecordNotFound
}

func (staleBlogRepo) GetByURL(context.Context, string) (*models.Blog, error) {
	return nil, gorm.ErrRecordNotFound
}

func (suite *ServiceTestSuite) TestDuplicateInsertIsBadRequest() {
	suite.register("ada")

	auth := NewAuthService(staleUserRepo{suite.userRepo}, repositories.NewMemoryTokenBlacklist(), TokenConfig{
		Secret:     []byte("unit-secret"),
		Expiration: time.Hour,
	}, zap.NewNop())
	_, err := auth.Register(suite.ctx, models.RegisterRequest{
		Email: "ada@example.com", Username: "ada", Password: "password123",
	})
	suite.Equal(models.ErrorBadRequest{Message: "Registration failed"}, err)

	other := suite.register("bob")
	users := NewUserService(staleUserRepo{suite.userRepo})
	taken := "ada"
	_, err = users.UpdateMe(suite.ctx, other, models.UpdateUserRequest{Username: &taken})
	suite.IsType(models.ErrorBadRequest{}, err)

	tagRepo := repositories.NewTagRepository(suite.db)
	_, err = suite.tags.CreateTag(suite.ctx, models.CreateTagRequest{Name: "shoegaze"})
	suite.Require().NoError(err)
	_, err = NewTagService(staleTagRepo{tagRepo}).CreateTag(suite.ctx, models.CreateTagRequest{Name: "shoegaze"})
	suite.Equal(errDuplicateTag, err)

	bandRepo := repositories.NewBandRepository(suite.db)
	bands := NewBandService(bandRepo, repositories.NewSongRepository(suite.db), tagRepo)
	_, err = bands.CreateBand(suite.ctx, models.CreateBandRequest{Name: "Slowdive"})
	suite.Require().NoError(err)
	_, err = NewBandService(staleBandRepo{bandRepo}, repositories.NewSongRepository(suite.db), tagRepo).
		CreateBand(suite.ctx, models.CreateBandRequest{Name: "Slowdive"})
	suite.Equal(models.ErrorBadRequest{Message: errDuplicateBand}, err)

	blogRepo := repositories.NewBlogRepository(suite.db)
	_, err = NewBlogService(blogRepo, tagRepo).CreateBlog(suite.ctx, models.CreateBlogRequest{Name: "Gorilla", URL: "https://gorilla.test"})
	suite.Require().NoError(err)
	_, err = NewBlogService(staleBlogRepo{blogRepo}, tagRepo).
		CreateBlog(suite.ctx, models.CreateBlogRequest{Name: "Gorilla", URL: "https://gorilla.test"})
	suite.IsType(models.ErrorBadRequest{}, err)
}

func (suite *ServiceTestSuite) TestTokenSubjectIsEmail() {
	suite.register("ada")
	res, err := suite.auth.Login(suite.ctx, models.LoginRequest{Username: "ada", Password: "password123"})
	suite.Require().NoError(err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("unit-secret"), nil
	})
	suite.Require().NoError(err)
	suite.Equal("ada@example.com", claims.Subject)
	suite.Equal("ada", claims.Username)
	suite.WithinDuration(time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func (suite *ServiceTestSuite) TestAuthenticateRejectsBadTokens() {
	user := suite.register("ada")

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := foreign.SignedString([]byte("other-secret"))
	suite.Require().NoError(err)
	_, err = suite.auth.Authenticate(suite.ctx, signed)
	suite.IsType(models.ErrorUnauthorized{}, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email, ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	signed, err = expired.SignedString([]byte("unit-secret"))
	suite.Require().NoError(err)
	_, err = suite.auth.Authenticate(suite.ctx, signed)
	suite.IsType(models.ErrorUnauthorized{}, err)

	ghost := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ghost@example.com", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err = ghost.SignedString([]byte("unit-secret"))
	suite.Require().NoError(err)
	_, err = suite.auth.Authenticate(suite.ctx, signed)
	suite.IsType(models.ErrorUnauthorized{}, err)
}

func (suite *ServiceTestSuite) TestLogoutRevokesToken() {
	user := suite.register("ada")
	res, err := suite.auth.Login(suite.ctx, models.LoginRequest{Username: "ada", Password: "password123"})
	suite.Require().NoError(err)

	out, err := suite.auth.Logout(suite.ctx, res.AccessToken, user)
	suite.Require().NoError(err)
	suite.Equal("Successfully logged out", out.Message)

	_, err = suite.auth.Authenticate(suite.ctx, res.AccessToken)
	suite.Equal(models.ErrorUnauthorized{Message: "Token has been revoked"}, err)
}

func (suite *ServiceTestSuite) TestEnsureSuperuser() {
	suite.Require().NoError(suite.auth.EnsureSuperuser(suite.ctx, "root@example.com", "root", "password123"))
	root, err := suite.userRepo.GetByEmail(suite.ctx, "root@example.com")
	suite.Require().NoError(err)
	suite.True(root.IsSuperuser)

	suite.Require().NoError(suite.auth.EnsureSuperuser(suite.ctx, "root@example.com", "root", "password123"))
	users, err := suite.userRepo.GetMulti(suite.ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Len(users, 1)

	plain := suite.register("ada")
	suite.Require().NoError(suite.auth.EnsureSuperuser(suite.ctx, plain.Email, plain.Username, "ignored-password"))
	promoted, err := suite.userRepo.Get(suite.ctx, plain.ID)
	suite.Require().NoError(err)
	suite.True(promoted.IsSuperuser)
}

func (suite *ServiceTestSuite) TestTagNameIsUnique() {
	_, err := suite.tags.CreateTag(suite.ctx, models.CreateTagRequest{Name: "ambient"})
	suite.Require().NoError(err)

	_, err = suite.tags.CreateTag(suite.ctx, models.CreateTagRequest{Name: "ambient"})
	suite.Equal(errDuplicateTag, err)
}

func (suite *ServiceTestSuite) TestSearchRejectsInvertedDurations() {
	lo, hi := 300, 100
	_, err := suite.songs.SearchSongs(suite.ctx, models.SongSearchParams{
		Query: "x", MinDuration: &lo, MaxDuration: &hi, SortBy: models.SortNewest, Limit: 10,
	})
	suite.IsType(models.ErrorValidation{}, err)
}

func (suite *ServiceTestSuite) TestPeriodStart() {
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := &songService{now: func() time.Time { return fixed }}

	suite.Nil(svc.periodStart(models.PeriodAllTime))
	suite.Equal(fixed.AddDate(0, 0, -7), *svc.periodStart(models.PeriodWeek))
	suite.Equal(fixed.AddDate(0, 0, -30), *svc.periodStart(models.PeriodMonth))
	suite.Equal(fixed.AddDate(0, 0, -365), *svc.periodStart(models.PeriodYear))
}

func (suite *ServiceTestSuite) TestFeedFallbackOnlyOnFirstPage() {
	user := suite.register("ada")
	_, err := suite.songs.CreateSong(suite.ctx, models.CreateSongRequest{Title: "Only", Duration: 10, FilePath: "audio/o.mp3"})
	suite.Require().NoError(err)

	first, err := suite.songs.GetFeed(suite.ctx, user, 0, 10)
	suite.Require().NoError(err)
	suite.Len(first, 1)

	later, err := suite.songs.GetFeed(suite.ctx, user, 10, 10)
	suite.Require().NoError(err)
	suite.Empty(later)
}

func (suite *ServiceTestSuite) TestUpdateSongReplacesTags() {
	a, err := suite.tags.CreateTag(suite.ctx, models.CreateTagRequest{Name: "a"})
	suite.Require().NoError(err)
	b, err := suite.tags.CreateTag(suite.ctx, models.CreateTagRequest{Name: "b"})
	suite.Require().NoError(err)

	song, err := suite.songs.CreateSong(suite.ctx, models.CreateSongRequest{
		Title: "Tagged", Duration: 10, FilePath: "audio/t.mp3", TagIDs: []uint{a.ID, a.ID},
	})
	suite.Require().NoError(err)
	suite.Len(song.Tags, 1)

	tagIDs := []uint{b.ID}
	updated, err := suite.songs.UpdateSong(suite.ctx, song.ID, models.UpdateSongRequest{TagIDs: &tagIDs})
	suite.Require().NoError(err)
	suite.Require().Len(updated.Tags, 1)
	suite.Equal("b", updated.Tags[0].Name)

	title := "Renamed"
	updated, err = suite.songs.UpdateSong(suite.ctx, song.ID, models.UpdateSongRequest{Title: &title})
	suite.Require().NoError(err)
	suite.Equal("Renamed", updated.Title)
	suite.Len(updated.Tags, 1, "tags are kept when tag_ids is omitted")

	empty := []uint{}
	updated, err = suite.songs.UpdateSong(suite.ctx, song.ID, models.UpdateSongRequest{TagIDs: &empty})
	suite.Require().NoError(err)
	suite.Empty(updated.Tags)

	fan := suite.register("fan")
	suite.Require().NoError(suite.db.Create(&models.UserSong{UserID: fan.ID, SongID: song.ID, IsFavorite: true}).Error)
	updated, err = suite.songs.UpdateSong(suite.ctx, song.ID, models.UpdateSongRequest{Title: &title})
	suite.Require().NoError(err)
	suite.Equal(int64(1), updated.FavoriteCount)

	missing := []uint{999}
	_, err = suite.songs.UpdateSong(suite.ctx, song.ID, models.UpdateSongRequest{TagIDs: &missing})
	suite.IsType(models.ErrorNotFound{}, err)
}

func (suite *ServiceTestSuite) TestCannotFollowSelf() {
	user := suite.register("ada")
	_, err := suite.follows.FollowUser(suite.ctx, user, user.ID)
	suite.IsType(models.ErrorBadRequest{}, err)
}

func (suite *ServiceTestSuite) TestCommentOwnership() {
	owner := suite.register("ada")
	other := suite.register("bob")
	song, err := suite.songs.CreateSong(suite.ctx, models.CreateSongRequest{Title: "S", Duration: 10, FilePath: "audio/s.mp3"})
	suite.Require().NoError(err)

	comment, err := suite.comments.CreateComment(suite.ctx, owner, models.CreateCommentRequest{Content: "nice", SongID: &song.ID})
	suite.Require().NoError(err)
	suite.Equal(models.TargetSong, comment.TargetType)

	_, err = suite.comments.UpdateComment(suite.ctx, other, comment.ID, models.UpdateCommentRequest{Content: "mine"})
	suite.IsType(models.ErrorForbidden{}, err)

	other.IsSuperuser = true
	updated, err := suite.comments.UpdateComment(suite.ctx, other, comment.ID, models.UpdateCommentRequest{Content: "moderated"})
	suite.Require().NoError(err)
	suite.Equal("moderated", updated.Content)

	_, err = suite.comments.GetCommentsByTarget(suite.ctx, models.CommentTargetType("album"), song.ID, 0, 10)
	suite.IsType(models.ErrorValidation{}, err)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
