// internal/app/repository/user.go
package repository

import (
	"errors"
	"fmt"

	"CRM-Gateway/internal/app/ds"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// RegisterUser создает пользователя с хэшированным паролем
func (r *UserRepository) RegisterUser(user *ds.User) error {
	var existing ds.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return fmt.Errorf("user with email %s already exists", user.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)

	return r.db.Create(user).Error
}

// Authenticate проверяет email и пароль, возвращает пользователя
func (r *UserRepository) Authenticate(email, password string) (ds.User, error) {
	var user ds.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ds.User{}, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ds.User{}, errors.New("invalid credentials")
	}

	return user, nil
}

// GetUserProfile возвращает профиль пользователя
func (r *UserRepository) GetUserProfile(id uint) (ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	return user, err
}

// UpdateProfile обновляет поля профиля пользователя
func (r *UserRepository) UpdateProfile(id uint, updates map[string]interface{}) error {
	if password, ok := updates["password"].(string); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updates["password"] = string(hash)
	}

	result := r.db.Model(&ds.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user with id %d not found", id)
	}
	return nil
}

// ChangePassword меняет пароль после проверки текущего
func (r *UserRepository) ChangePassword(id uint, currentPassword, newPassword string) error {
	var user ds.User
	if err := r.db.First(&user, id).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return r.db.Model(&user).Update("password", string(hash)).Error
}
