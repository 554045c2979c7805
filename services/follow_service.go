package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type FollowService interface {
	FollowUser(ctx context.Context, user *models.User, targetID uint) (*models.UserFollow, error)
	UnfollowUser(ctx context.Context, user *models.User, targetID uint) error
	IsFollowingUser(ctx context.Context, user *models.User, targetID uint) (bool, error)
	GetUserFollowers(ctx context.Context, targetID uint, skip, limit int) ([]models.User, error)
	GetFollowingUsers(ctx context.Context, user *models.User, skip, limit int) ([]models.User, error)

	FollowBand(ctx context.Context, user *models.User, bandID uint) (*models.UserBand, error)
	UnfollowBand(ctx context.Context, user *models.User, bandID uint) error
	IsFollowingBand(ctx context.Context, user *models.User, bandID uint) (bool, error)
	GetBandFollowers(ctx context.Context, bandID uint, skip, limit int) ([]models.User, error)
	GetFollowedBands(ctx context.Context, user *models.User, skip, limit int) ([]models.Band, error)

	FollowBlog(ctx context.Context, user *models.User, blogID uint) (*models.UserBlog, error)
	UnfollowBlog(ctx context.Context, user *models.User, blogID uint) error
	IsFollowingBlog(ctx context.Context, user *models.User, blogID uint) (bool, error)
	GetBlogFollowers(ctx context.Context, blogID uint, skip, limit int) ([]models.User, error)
	GetFollowedBlogs(ctx context.Context, user *models.User, skip, limit int) ([]models.Blog, error)
}

type followService struct {
	userFollows repositories.UserFollowRepository
	bandFollows repositories.BandFollowRepository
	blogFollows repositories.BlogFollowRepository
	userRepo    repositories.UserRepository
	bandRepo    repositories.BandRepository
	blogRepo    repositories.BlogRepository
}

func NewFollowService(
	userFollows repositories.UserFollowRepository,
	bandFollows repositories.BandFollowRepository,
	blogFollows repositories.BlogFollowRepository,
	userRepo repositories.UserRepository,
	bandRepo repositories.BandRepository,
	blogRepo repositories.BlogRepository,
) FollowService {
	return &followService{
		userFollows: userFollows,
		bandFollows: bandFollows,
		blogFollows: blogFollows,
		userRepo:    userRepo,
		bandRepo:    bandRepo,
		blogRepo:    blogRepo,
	}
}

type existsFunc func(ctx context.Context, id uint) (bool, error)

func mustExist(ctx context.Context, exists existsFunc, id uint, entity string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(entity)
	}
	return nil
}

func (s *followService) FollowUser(ctx context.Context, user *models.User, targetID uint) (*models.UserFollow, error) {
	if user.ID == targetID {
		return nil, models.ErrorBadRequest{Message: "You cannot follow yourself"}
	}
	if err := mustExist(ctx, s.userRepo.Exists, targetID, "User"); err != nil {
		return nil, err
	}
	return s.userFollows.Follow(ctx, user.ID, targetID)
}

func (s *followService) UnfollowUser(ctx context.Context, user *models.User, targetID uint) error {
	if err := mustExist(ctx, s.userRepo.Exists, targetID, "User"); err != nil {
		return err
	}
	return s.userFollows.Unfollow(ctx, user.ID, targetID)
}

func (s *followService) IsFollowingUser(ctx context.Context, user *models.User, targetID uint) (bool, error) {
	return s.userFollows.IsFollowing(ctx, user.ID, targetID)
}

func (s *followService) GetUserFollowers(ctx context.Context, targetID uint, skip, limit int) ([]models.User, error) {
	if err := mustExist(ctx, s.userRepo.Exists, targetID, "User"); err != nil {
		return nil, err
	}
	return s.userFollows.Followers(ctx, targetID, skip, limit)
}

func (s *followService) GetFollowingUsers(ctx context.Context, user *models.User, skip, limit int) ([]models.User, error) {
	return s.userFollows.Followed(ctx, user.ID, skip, limit)
}

func (s *followService) FollowBand(ctx context.Context, user *models.User, bandID uint) (*models.UserBand, error) {
	if err := mustExist(ctx, s.bandRepo.Exists, bandID, "Band"); err != nil {
		return nil, err
	}
	return s.bandFollows.Follow(ctx, user.ID, bandID)
}

func (s *followService) UnfollowBand(ctx context.Context, user *models.User, bandID uint) error {
	if err := mustExist(ctx, s.bandRepo.Exists, bandID, "Band"); err != nil {
		return err
	}
	return s.bandFollows.Unfollow(ctx, user.ID, bandID)
}

func (s *followService) IsFollowingBand(ctx context.Context, user *models.User, bandID uint) (bool, error) {
	return s.bandFollows.IsFollowing(ctx, user.ID, bandID)
}

func (s *followService) GetBandFollowers(ctx context.Context, bandID uint, skip, limit int) ([]models.User, error) {
	if err := mustExist(ctx, s.bandRepo.Exists, bandID, "Band"); err != nil {
		return nil, err
	}
	return s.bandFollows.Followers(ctx, bandID, skip, limit)
}

func (s *followService) GetFollowedBands(ctx context.Context, user *models.User, skip, limit int) ([]models.Band, error) {
	return s.bandFollows.Followed(ctx, user.ID, skip, limit)
}

func (s *followService) FollowBlog(ctx context.Context, user *models.User, blogID uint) (*models.UserBlog, error) {
	if err := mustExist(ctx, s.blogRepo.Exists, blogID, "Blog"); err != nil {
		return nil, err
	}
	return s.blogFollows.Follow(ctx, user.ID, blogID)
}

func (s *followService) UnfollowBlog(ctx context.Context, user *models.User, blogID uint) error {
	if err := mustExist(ctx, s.blogRepo.Exists, blogID, "Blog"); err != nil {
		return err
	}
	return s.blogFollows.Unfollow(ctx, user.ID, blogID)
}

func (s *followService) IsFollowingBlog(ctx context.Context, user *models.User, blogID uint) (bool, error) {
	return s.blogFollows.IsFollowing(ctx, user.ID, blogID)
}

func (s *followService) GetBlogFollowers(ctx context.Context, blogID uint, skip, limit int) ([]models.User, error) {
	if err := mustExist(ctx, s.blogRepo.Exists, blogID, "Blog"); err != nil {
		return nil, err
	}
	return s.blogFollows.Followers(ctx, blogID, skip, limit)
}

func (s *followService) GetFollowedBlogs(ctx context.Context, user *models.User, skip, limit int) ([]models.Blog, error) {
	return s.blogFollows.Followed(ctx, user.ID, skip, limit)
}
