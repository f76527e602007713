package repository

import (
	"strings"

	"cooldeal/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByLogin matches either the username or the email (case-insensitive).
func (r *UserRepository) FindByLogin(login string) (*entity.User, error) {
	login = strings.TrimSpace(login)
	var user entity.User
	if err := r.DB.
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByUsername(tx *gorm.DB, username string) (int64, error) {
	var count int64
	err := tx.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountByEmail(tx *gorm.DB, email string) (int64, error) {
	var count int64
	err := tx.Model(&entity.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(tx *gorm.DB, user *entity.User) error {
	return tx.Create(user).Error
}

func (r *UserRepository) Update(tx *gorm.DB, userID uint, updates map[string]any) error {
	return tx.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *UserRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}
