package repositories

import (
	"errors"
	"socialChat/internal/errs"
	"socialChat/internal/models"
	"socialChat/internal/utils"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (ur *UserRepository) GetUserById(userId uint) (*models.User, error) {
	var user models.User
	result := ur.db.Where("id = ?", userId).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (ur *UserRepository) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, error) {
	var users []models.User
	var total int64

	transactionErr := ur.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Order("id ASC").
			Find(&users).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		return nil, transactionErr
	}

	userResponses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		userResponses = append(userResponses, *users[i].ToUserResponse())
	}

	return &models.GetUsersResponse{
		Users: userResponses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (ur *UserRepository) SetUserOnlineStatus(userId uint, isOnline bool) (bool, *time.Time, error) {
	lastSeen := time.Now()
	result := ur.db.Model(&models.User{}).
		Where("id = ?", userId).
		Updates(map[string]interface{}{
			"is_online": isOnline,
			"last_seen": lastSeen,
		})
	if result.Error != nil {
		return false, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil, errs.ErrUserNotFound
	}
	return isOnline, &lastSeen, nil
}

func (ur *UserRepository) GetUserOnlineStatus(userId uint) (bool, *time.Time, error) {
	user, err := ur.GetUserById(userId)
	if err != nil {
		return false, nil, err
	}
	return user.IsOnline, user.LastSeen, nil
}
