package models

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest accepts OAuth2 password-form fields. Username may also be the
// account email.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type LogoutResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type CreateBandRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	TagIDs      []uint  `json:"tag_ids"`
}

type UpdateBandRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	TagIDs      *[]uint `json:"tag_ids"`
}

type CreateBlogRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	URL           string  `json:"url" binding:"required,url"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"image_url" binding:"omitempty,url"`
	RSSFeedURL    *string `json:"rss_feed_url" binding:"omitempty,url"`
	IsActive      *bool   `json:"is_active"`
	LastScrapedAt *string `json:"last_scraped_at"`
	TagIDs        []uint  `json:"tag_ids"`
}

type UpdateBlogRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	URL           *string `json:"url" binding:"omitempty,url"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"image_url" binding:"omitempty,url"`
	RSSFeedURL    *string `json:"rss_feed_url" binding:"omitempty,url"`
	IsActive      *bool   `json:"is_active"`
	LastScrapedAt *string `json:"last_scraped_at"`
	TagIDs        *[]uint `json:"tag_ids"`
}

type CreateSongRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=200"`
	Duration      int     `json:"duration" binding:"required,gt=0"`
	FilePath      string  `json:"file_path" binding:"required"`
	BandID        *uint   `json:"band_id"`
	BlogID        *uint   `json:"blog_id"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	ReleaseDate   *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	TagIDs        []uint  `json:"tag_ids"`
}

type UpdateSongRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=200"`
	Duration      *int    `json:"duration" binding:"omitempty,gt=0"`
	FilePath      *string `json:"file_path" binding:"omitempty,min=1"`
	BandID        *uint   `json:"band_id"`
	BlogID        *uint   `json:"blog_id"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	ReleaseDate   *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	TagIDs        *[]uint `json:"tag_ids"`
}

const (
	SortPopularity = "popularity"
	SortNewest     = "newest"
	SortOldest     = "oldest"
)

type SongSearchParams struct {
	Query       string `form:"query" binding:"required,min=1"`
	BandID      *uint  `form:"band_id"`
	BlogID      *uint  `form:"blog_id"`
	ReleaseYear *int   `form:"release_year" binding:"omitempty,min=1000,max=9999"`
	MinDuration *int   `form:"min_duration" binding:"omitempty,min=0"`
	MaxDuration *int   `form:"max_duration" binding:"omitempty,min=0"`
	TagIDs      []uint `form:"tag_ids"`
	SortBy      string `form:"sort_by,default=newest" binding:"oneof=popularity newest oldest"`
	Skip        int    `form:"skip,default=0" binding:"min=0"`
	Limit       int    `form:"limit,default=10" binding:"min=1,max=1000"`
}

const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodYear    = "year"
	PeriodAllTime = "all_time"
)

type PopularSongsParams struct {
	TimePeriod string `form:"time_period,default=all_time" binding:"oneof=week month year all_time"`
	Skip       int    `form:"skip,default=0" binding:"min=0"`
	Limit      int    `form:"limit,default=10" binding:"min=1,max=1000"`
}

type CreateTagRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=50"`
	Description *string `json:"description"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
	SongID  *uint  `json:"song_id"`
	BandID  *uint  `json:"band_id"`
	BlogID  *uint  `json:"blog_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type CommentListParams struct {
	SongID *uint `form:"song_id"`
	BandID *uint `form:"band_id"`
	BlogID *uint `form:"blog_id"`
	Skip   int   `form:"skip,default=0" binding:"min=0"`
	Limit  int   `form:"limit,default=100" binding:"min=1,max=1000"`
}

type AddFavoriteRequest struct {
	SongID uint `json:"song_id" binding:"required"`
}

type FileUploadResponse struct {
	FilePath string `json:"file_path"`
	URL      string `json:"url"`
}

type PresignedURLParams struct {
	Expires int `form:"expires,default=3600" binding:"min=1,max=604800"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
