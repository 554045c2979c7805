package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type UserService interface {
	GetUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateMe(ctx context.Context, user *models.User, req models.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.userRepo.GetMulti(ctx, skip, limit)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "User")
	}
	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, user *models.User, req models.UpdateUserRequest) (*models.User, error) {
	if err := checkUnique(ctx, s.userRepo, user.ID, req.Email, req.Username); err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, uniqueErr(err, "Email or username already registered")
	}
	return user, nil
}
