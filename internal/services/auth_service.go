package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tasklist-backend/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrTokenRevoked       = errors.New("refresh token revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db      *gorm.DB
	access  *auth.Codec
	refresh *auth.Codec
}

func NewAuthService(db *gorm.DB, cfg *config.Config) (*AuthService, error) {
	access, err := auth.NewCodec(cfg.AccessTokenSecret, cfg.TokenAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("access token codec: %w", err)
	}
	refresh, err := auth.NewCodec(cfg.RefreshTokenSecret, cfg.TokenAlgorithm, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("refresh token codec: %w", err)
	}
	return &AuthService{db: db, access: access, refresh: refresh}, nil
}

// Register creates a user and logs them in with an access token only.
// A refresh token is not issued until an explicit login.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, err := s.access.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &dto.AuthResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// Login verifies credentials and issues an access/refresh token pair. Unknown
// email and wrong password return the same error to prevent user enumeration.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.access.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.refresh.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		Subject:   user.Email,
		TokenHash: hashToken(refreshToken),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Refresh exchanges a valid, previously stored refresh token for a new access
// token. The presented token string must match a stored record exactly (by
// hash); a valid signature alone is not enough. No rotation takes place.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	claims, err := s.refresh.Verify(req.RefreshToken)
	if err != nil {
		slog.Warn("refresh token rejected", "action", "refresh", "error", err.Error())
		return nil, ErrInvalidToken
	}

	var stored models.RefreshToken
	err = s.db.Where("subject = ? AND token_hash = ?", claims.Subject, hashToken(req.RefreshToken)).
		Order("created_at DESC").
		First(&stored).Error
	if err != nil {
		slog.Warn("refresh token not on record", "action", "refresh", "subject", claims.Subject)
		return nil, ErrTokenRevoked
	}

	accessToken, err := s.access.Issue(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &dto.AuthResponse{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// CurrentUser resolves the user a verified access token's subject refers to.
func (s *AuthService) CurrentUser(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// DeleteAccount removes a user and their todos after re-checking the password.
// Refresh token records for the subject are cleaned up in the same transaction.
func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if !auth.CheckPassword(password, user.Password) {
		return ErrInvalidCredentials
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", userID).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject = ?", user.Email).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
