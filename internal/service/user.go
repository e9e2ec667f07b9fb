package service

import (
	"fmt"

	"finbot/internal/domain"
	"finbot/internal/repository"
)

// UserService handles user profile bookkeeping
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpsertProfile records the sender's current profile fields
func (s *UserService) UpsertProfile(userID int64, username, firstName, lastName string) error {
	return s.userRepo.Upsert(domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	})
}

// DisplayName resolves the name shown in report headers
func (s *UserService) DisplayName(userID int64) (string, error) {
	user, err := s.userRepo.Get(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return fmt.Sprintf("ID %d", userID), nil
	}
	return user.DisplayName(), nil
}
