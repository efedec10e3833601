package repository

import (
	"errors"
	"time"

	"hospital-backend/internal/models"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no matching user row exists
var ErrUserNotFound = errors.New("user not found")

// ErrRefreshTokenNotFound is returned when a refresh token hash is unknown or revoked
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsername retrieves an active user by username
func (r *UserRepository) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID retrieves an active user by ID
func (r *UserRepository) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateRefreshToken stores a hashed refresh token
func (r *UserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash retrieves a non-revoked refresh token with its user
func (r *UserRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked
func (r *UserRepository) RevokeRefreshTokenByHash(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// DeleteExpiredRefreshTokens removes tokens past their expiry or revoked,
// returning the number of rows deleted
func (r *UserRepository) DeleteExpiredRefreshTokens(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ? OR revoked = ?", now, true).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
