package repositories

import (
	"sublet_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RenterRepository interface {
	Create(db *gorm.DB, profile *models.RenterProfile) error
	Update(db *gorm.DB, profile *models.RenterProfile) error
	FindByID(db *gorm.DB, id string) (*models.RenterProfile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.RenterProfile, error)
}

type RenterRepositoryImpl struct{}

func NewRenterRepository() RenterRepository {
	return &RenterRepositoryImpl{}
}

func (r *RenterRepositoryImpl) Create(db *gorm.DB, profile *models.RenterProfile) error {
	return db.Omit(clause.Associations).Create(profile).Error
}

func (r *RenterRepositoryImpl) Update(db *gorm.DB, profile *models.RenterProfile) error {
	return db.Omit(clause.Associations).Save(profile).Error
}

func (r *RenterRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.RenterProfile, error) {
	var profile models.RenterProfile
	if err := db.Preload("Location").First(&profile, "renter_profiles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RenterRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.RenterProfile, error) {
	var profile models.RenterProfile
	if err := db.Preload("Location").First(&profile, "renter_profiles.user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
