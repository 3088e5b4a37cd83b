package service

import (
	"context"

	"app/internal/model"
	"app/internal/repository"
)

type UserService interface {
	// GetOrCreate returns the profile for the identity's email, creating it
	// on first authenticated contact. Existing profiles are never updated.
	GetOrCreate(ctx context.Context, identity model.Identity) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetOrCreate(ctx context.Context, identity model.Identity) (*model.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u := &model.User{
		Email: identity.Email,
		Name:  identity.DisplayName(),
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
