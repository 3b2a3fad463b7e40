package repositories

import (
	"sublet_backend/internal/models"

	"gorm.io/gorm"
)

type ReferenceRepository interface {
	ListAmenities(db *gorm.DB) ([]models.Amenity, error)
	ListBuildingTypes(db *gorm.DB) ([]models.BuildingType, error)
}

type ReferenceRepositoryImpl struct{}

func NewReferenceRepository() ReferenceRepository {
	return &ReferenceRepositoryImpl{}
}

func (r *ReferenceRepositoryImpl) ListAmenities(db *gorm.DB) ([]models.Amenity, error) {
	var amenities []models.Amenity
	err := db.Order("name").Find(&amenities).Error
	return amenities, err
}

func (r *ReferenceRepositoryImpl) ListBuildingTypes(db *gorm.DB) ([]models.BuildingType, error) {
	var types []models.BuildingType
	err := db.Order("name").Find(&types).Error
	return types, err
}
