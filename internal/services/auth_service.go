package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"sublet_backend/internal/auth"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

// TokenIssuer выдает access-токен для пользователя
type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenIssuer) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		appErr := apperrors.FromDB(err, "user")
		if apperrors.HasCode(appErr, apperrors.CodeConflict) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, appErr
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.FromDB(err, "user")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
