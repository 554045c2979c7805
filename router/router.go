package router

import (
	"listener-api/config"
	"listener-api/handlers"
	"listener-api/helper"
	"listener-api/middleware"
	"listener-api/repositories"
	"listener-api/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *zap.Logger
	Blacklist repositories.TokenBlacklistRepository
	// Files is optional. Upload routes are not mounted without it.
	Files repositories.FileRepository
}

func New(opts Options) *gin.Engine {
	cfg := opts.Config
	db := opts.DB
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = repositories.NewMemoryTokenBlacklist()
	}
	h := helper.NewHTTPHelper(logger)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bandRepo := repositories.NewBandRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	songRepo := repositories.NewSongRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	userFollowRepo := repositories.NewUserFollowRepository(db)
	bandFollowRepo := repositories.NewBandFollowRepository(db)
	blogFollowRepo := repositories.NewBlogFollowRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, blacklist, services.TokenConfig{
		Secret:     cfg.JWTSecret,
		Expiration: cfg.JWTExpiration,
	}, logger)
	userService := services.NewUserService(userRepo)
	bandService := services.NewBandService(bandRepo, songRepo, tagRepo)
	blogService := services.NewBlogService(blogRepo, tagRepo)
	songService := services.NewSongService(songRepo, bandRepo, blogRepo, tagRepo, favoriteRepo)
	tagService := services.NewTagService(tagRepo)
	commentService := services.NewCommentService(commentRepo, songRepo, bandRepo, blogRepo, userRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, songRepo)
	followService := services.NewFollowService(userFollowRepo, bandFollowRepo, blogFollowRepo, userRepo, bandRepo, blogRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, h)
	userHandler := handlers.NewUserHandler(userService, songService, h)
	bandHandler := handlers.NewBandHandler(bandService, h)
	blogHandler := handlers.NewBlogHandler(blogService, h)
	songHandler := handlers.NewSongHandler(songService, h)
	tagHandler := handlers.NewTagHandler(tagService, h)
	commentHandler := handlers.NewCommentHandler(commentService, h)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, h)
	followHandler := handlers.NewFollowHandler(followService, h)

	metrics := middleware.NewMetrics("listener")

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware(config.ServiceName))
	}
	router.Use(
		middleware.RequestLogger(logger),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authRequired := middleware.AuthMiddleware(authService, h)
	active := middleware.RequireActive(h)
	superuser := middleware.RequireSuperuser(h)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", limiter.Middleware(h), authHandler.Register)
			auth.POST("/login", limiter.Middleware(h), authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
		}

		users := v1.Group("/users", authRequired)
		{
			users.GET("", superuser, userHandler.GetUsers)
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.GET("/me/following", active, followHandler.GetFollowingUsers)
			users.GET("/me/followed-bands", active, followHandler.GetFollowedBands)
			users.GET("/me/followed-blogs", active, followHandler.GetFollowedBlogs)
			users.GET("/me/recently-played", active, userHandler.GetRecentlyPlayed)

			favorites := users.Group("/me/favorites", active)
			{
				favorites.GET("", favoriteHandler.GetFavorites)
				favorites.POST("", favoriteHandler.AddFavorite)
				favorites.DELETE("/:song_id", favoriteHandler.RemoveFavorite)
				favorites.GET("/:song_id/check", favoriteHandler.CheckFavorite)
			}

			users.GET("/:user_id", userHandler.GetUser)
			users.POST("/:user_id/follow", active, followHandler.FollowUser)
			users.DELETE("/:user_id/follow", active, followHandler.UnfollowUser)
			users.GET("/:user_id/is-followed", active, followHandler.IsFollowingUser)
			users.GET("/:user_id/followers", followHandler.GetUserFollowers)
		}

		bands := v1.Group("/bands")
		{
			bands.GET("", bandHandler.GetBands)
			bands.GET("/:band_id", bandHandler.GetBand)
			bands.GET("/:band_id/songs", bandHandler.GetBandSongs)
			bands.POST("", authRequired, active, bandHandler.CreateBand)
			bands.PUT("/:band_id", authRequired, superuser, bandHandler.UpdateBand)
			bands.DELETE("/:band_id", authRequired, superuser, bandHandler.DeleteBand)
			bands.POST("/:band_id/follow", authRequired, active, followHandler.FollowBand)
			bands.DELETE("/:band_id/follow", authRequired, active, followHandler.UnfollowBand)
			bands.GET("/:band_id/is-followed", authRequired, active, followHandler.IsFollowingBand)
			bands.GET("/:band_id/followers", authRequired, followHandler.GetBandFollowers)
		}

		blogs := v1.Group("/blogs", authRequired)
		{
			blogs.GET("", blogHandler.GetBlogs)
			blogs.GET("/active", blogHandler.GetActiveBlogs)
			blogs.GET("/:blog_id", blogHandler.GetBlog)
			blogs.POST("", superuser, blogHandler.CreateBlog)
			blogs.PUT("/:blog_id", superuser, blogHandler.UpdateBlog)
			blogs.DELETE("/:blog_id", superuser, blogHandler.DeleteBlog)
			blogs.POST("/:blog_id/follow", active, followHandler.FollowBlog)
			blogs.DELETE("/:blog_id/follow", active, followHandler.UnfollowBlog)
			blogs.GET("/:blog_id/is-followed", active, followHandler.IsFollowingBlog)
			blogs.GET("/:blog_id/followers", followHandler.GetBlogFollowers)
		}

		songs := v1.Group("/songs", authRequired)
		{
			songs.GET("", songHandler.GetSongs)
			songs.POST("", superuser, songHandler.CreateSong)
			songs.GET("/search", songHandler.SearchSongs)
			songs.GET("/popular", songHandler.GetPopularSongs)
			songs.GET("/feed", active, songHandler.GetFeed)
			songs.GET("/:song_id", songHandler.GetSong)
			songs.GET("/:song_id/similar", songHandler.GetSimilarSongs)
			songs.POST("/:song_id/play", active, songHandler.PlaySong)
			songs.PUT("/:song_id", superuser, songHandler.UpdateSong)
			songs.DELETE("/:song_id", superuser, songHandler.DeleteSong)
		}

		tags := v1.Group("/tags", authRequired)
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:tag_id", tagHandler.GetTag)
			tags.POST("", superuser, tagHandler.CreateTag)
			tags.PUT("/:tag_id", superuser, tagHandler.UpdateTag)
			tags.DELETE("/:tag_id", superuser, tagHandler.DeleteTag)
		}

		comments := v1.Group("/comments", authRequired)
		{
			comments.GET("", commentHandler.GetComments)
			comments.POST("", active, commentHandler.CreateComment)
			comments.GET("/by-target/:target_type/:target_id", commentHandler.GetCommentsByTarget)
			comments.GET("/by-user/:user_id", commentHandler.GetCommentsByUser)
			comments.GET("/:comment_id", commentHandler.GetComment)
			comments.PUT("/:comment_id", active, commentHandler.UpdateComment)
			comments.DELETE("/:comment_id", active, commentHandler.DeleteComment)
		}

		if opts.Files != nil {
			fileHandler := handlers.NewFileHandler(services.NewFileService(opts.Files, logger), h)

			files := v1.Group("/files", authRequired, active)
			{
				files.POST("/upload/audio", fileHandler.UploadAudio)
				files.POST("/upload/image", fileHandler.UploadImage)
				files.GET("/presigned-url/*file_path", fileHandler.GetPresignedURL)
			}
		}
	}

	return router
}
