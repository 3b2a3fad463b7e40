package services

import (
	"gorm.io/gorm"

	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/pkg/apperrors"
)

// ownedListing загружает листинг и проверяет, что он принадлежит userID
func ownedListing(db *gorm.DB, repo repositories.ListingRepository, userID, listingID string) (*models.Listing, error) {
	listing, err := repo.FindByID(db, listingID)
	if err != nil {
		appErr := apperrors.FromDB(err, "listing")
		if apperrors.HasCode(appErr, apperrors.CodeNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, appErr
	}
	if listing.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return listing, nil
}

// renterOf - профиль арендатора текущего пользователя
func renterOf(db *gorm.DB, repo repositories.RenterRepository, userID string) (*models.RenterProfile, error) {
	profile, err := repo.FindByUserID(db, userID)
	if err != nil {
		appErr := apperrors.FromDB(err, "renter")
		if apperrors.HasCode(appErr, apperrors.CodeNotFound) {
			return nil, apperrors.ErrRenterProfileNotFound
		}
		return nil, appErr
	}
	return profile, nil
}
