package services

import (
	"context"

	"gorm.io/gorm"

	"sublet_backend/internal/cache"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error)
	// DeleteMe удаляет пользователя вместе с листингами, профилем арендатора и свайпами
	DeleteMe(ctx context.Context, db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	recsCache cache.RecommendationCache
}

func NewUserService(userRepo repositories.UserRepository, recsCache cache.RecommendationCache) UserService {
	return &UserServiceImpl{userRepo: userRepo, recsCache: recsCache}
}

func (s *UserServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) DeleteMe(ctx context.Context, db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		return handleUserError(err)
	}
	// каскад удаляет листинги и лайки пользователя
	invalidateRecommendations(ctx, s.recsCache, "user_delete")
	return nil
}

func handleUserError(err error) error {
	appErr := apperrors.FromDB(err, "user")
	if apperrors.HasCode(appErr, apperrors.CodeNotFound) {
		return apperrors.ErrUserNotFound
	}
	return appErr
}
