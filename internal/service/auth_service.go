package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"

	"hospital-backend/pkg/utils"
)

var validRoles = map[string]bool{
	models.RoleAdmin:        true,
	models.RoleDoctor:       true,
	models.RoleNurse:        true,
	models.RoleWardManager:  true,
	models.RoleReceptionist: true,
	models.RolePharmacist:   true,
	models.RoleLabTech:      true,
}

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	// Find user by username
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	// Compare password
	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errors.New("invalid credentials")
	}

	// Generate access token
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Generate refresh token
	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Hash and store refresh token
	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}

	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	// Log login action
	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "user_login", fmt.Sprintf("User %s logged in", username))

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	// Hash the refresh token
	tokenHash := utils.HashRefreshToken(refreshToken)

	// Find refresh token in database
	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	// Check if token is expired
	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	// Generate new access token
	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	// Hash the refresh token
	tokenHash := utils.HashRefreshToken(refreshToken)

	// Revoke the token
	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// Register creates a new staff account
func (s *AuthService) Register(username, password, fullName, role string, actorID uint) (*UserResponse, error) {
	if !validRoles[role] {
		return nil, errors.New("invalid role")
	}

	// Check if username already exists
	existingUser, err := s.userRepo.FindUserByUsername(username)
	if err == nil && existingUser != nil {
		return nil, errors.New("username already exists")
	}

	// Hash the password
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(&actorID, "user_registered",
		fmt.Sprintf("User %s registered with role %s", username, role))

	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}
