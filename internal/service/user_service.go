package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateDietaryRestrictions(ctx context.Context, userID string, restrictions []string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) UpdateDietaryRestrictions(ctx context.Context, userID string, restrictions []string) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.UpdateDietaryRestrictions(ctx, userID, restrictions)
}
