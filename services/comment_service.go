package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type CommentService interface {
	CreateComment(ctx context.Context, user *models.User, req models.CreateCommentRequest) (*models.Comment, error)
	GetComments(ctx context.Context, params models.CommentListParams) ([]models.Comment, error)
	GetCommentsByTarget(ctx context.Context, targetType models.CommentTargetType, targetID uint, skip, limit int) ([]models.Comment, error)
	GetCommentsByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Comment, error)
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	UpdateComment(ctx context.Context, user *models.User, id uint, req models.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, user *models.User, id uint) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	songRepo    repositories.SongRepository
	bandRepo    repositories.BandRepository
	blogRepo    repositories.BlogRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	songRepo repositories.SongRepository,
	bandRepo repositories.BandRepository,
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		songRepo:    songRepo,
		bandRepo:    bandRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
	}
}

// resolveTarget checks that exactly one target id is set and that the
// target exists.
func (s *commentService) resolveTarget(ctx context.Context, req models.CreateCommentRequest) (models.CommentTargetType, error) {
	var (
		targetType models.CommentTargetType
		count      int
	)
	if req.SongID != nil {
		targetType, count = models.TargetSong, count+1
	}
	if req.BandID != nil {
		targetType, count = models.TargetBand, count+1
	}
	if req.BlogID != nil {
		targetType, count = models.TargetBlog, count+1
	}
	if count != 1 {
		return "", models.ErrorValidation{Message: "Exactly one of song_id, band_id or blog_id must be provided"}
	}

	var (
		ok  bool
		err error
	)
	switch targetType {
	case models.TargetSong:
		ok, err = s.songRepo.Exists(ctx, *req.SongID)
	case models.TargetBand:
		ok, err = s.bandRepo.Exists(ctx, *req.BandID)
	case models.TargetBlog:
		ok, err = s.blogRepo.Exists(ctx, *req.BlogID)
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", targetNotFound(targetType)
	}
	return targetType, nil
}

func targetNotFound(targetType models.CommentTargetType) error {
	switch targetType {
	case models.TargetSong:
		return notFound("Song")
	case models.TargetBand:
		return notFound("Band")
	default:
		return notFound("Blog")
	}
}

func (s *commentService) CreateComment(ctx context.Context, user *models.User, req models.CreateCommentRequest) (*models.Comment, error) {
	targetType, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:    req.Content,
		UserID:     user.ID,
		TargetType: targetType,
		SongID:     req.SongID,
		BandID:     req.BandID,
		BlogID:     req.BlogID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) GetComments(ctx context.Context, params models.CommentListParams) ([]models.Comment, error) {
	filter := repositories.CommentFilter{
		SongID: params.SongID,
		BandID: params.BandID,
		BlogID: params.BlogID,
	}
	return s.commentRepo.List(ctx, filter, params.Skip, params.Limit)
}

func (s *commentService) GetCommentsByTarget(ctx context.Context, targetType models.CommentTargetType, targetID uint, skip, limit int) ([]models.Comment, error) {
	if !targetType.Valid() {
		return nil, models.ErrorValidation{Message: "target_type must be one of song, band, blog"}
	}
	return s.commentRepo.ListByTarget(ctx, targetType, targetID, skip, limit)
}

func (s *commentService) GetCommentsByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Comment, error) {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("User")
	}
	return s.commentRepo.List(ctx, repositories.CommentFilter{UserID: &userID}, skip, limit)
}

func (s *commentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Comment")
	}
	return comment, nil
}

// ownComment loads a comment the user may modify: their own, or any comment
// for a superuser.
func (s *commentService) ownComment(ctx context.Context, user *models.User, id uint) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != user.ID && !user.IsSuperuser {
		return nil, models.ErrorForbidden{Message: "Not enough permissions"}
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, user *models.User, id uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.ownComment(ctx, user, id)
	if err != nil {
		return nil, err
	}
	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, user *models.User, id uint) error {
	if _, err := s.ownComment(ctx, user, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}
