package services

import (
	"socialChat/internal/models"
	"socialChat/internal/repositories"
	"time"
)

// UserService is the read-side of the externally owned user records, plus the
// online-status flips driven by the observing sockets.
type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, error) {
	return us.userRepo.GetAllUsersWithPagination(page, size)
}

func (us *UserService) GetSingleUser(userId uint) (*models.UserResponse, error) {
	user, err := us.userRepo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	return user.ToUserResponse(), nil
}

func (us *UserService) GetUserById(userId uint) (*models.User, error) {
	return us.userRepo.GetUserById(userId)
}

func (us *UserService) SetUserOnlineStatus(userId uint, isOnline bool) (bool, *time.Time, error) {
	return us.userRepo.SetUserOnlineStatus(userId, isOnline)
}

func (us *UserService) GetUserOnlineStatus(userId uint) (bool, *time.Time, error) {
	return us.userRepo.GetUserOnlineStatus(userId)
}
