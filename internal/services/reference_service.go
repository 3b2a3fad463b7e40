package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"sublet_backend/internal/geocoding"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/pkg/apperrors"
)

type ReferenceService interface {
	Amenities(db *gorm.DB) ([]models.Amenity, error)
	BuildingTypes(db *gorm.DB) ([]models.BuildingType, error)
}

type ReferenceServiceImpl struct {
	refRepo repositories.ReferenceRepository
}

func NewReferenceService(refRepo repositories.ReferenceRepository) ReferenceService {
	return &ReferenceServiceImpl{refRepo: refRepo}
}

func (s *ReferenceServiceImpl) Amenities(db *gorm.DB) ([]models.Amenity, error) {
	amenities, err := s.refRepo.ListAmenities(db)
	if err != nil {
		return nil, apperrors.FromDB(err, "amenity")
	}
	return amenities, nil
}

func (s *ReferenceServiceImpl) BuildingTypes(db *gorm.DB) ([]models.BuildingType, error) {
	types, err := s.refRepo.ListBuildingTypes(db)
	if err != nil {
		return nil, apperrors.FromDB(err, "building_type")
	}
	return types, nil
}

type LocationService interface {
	Autocomplete(ctx context.Context, input string) ([]geocoding.Prediction, error)
}

type LocationServiceImpl struct {
	suggester PlaceSuggester
}

func NewLocationService(suggester PlaceSuggester) LocationService {
	return &LocationServiceImpl{suggester: suggester}
}

func (s *LocationServiceImpl) Autocomplete(ctx context.Context, input string) ([]geocoding.Prediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, apperrors.NewValidationError("location", "input is required")
	}
	predictions, err := s.suggester.Autocomplete(ctx, input)
	if err != nil {
		return nil, geocodeError(err, input)
	}
	if predictions == nil {
		predictions = []geocoding.Prediction{}
	}
	return predictions, nil
}
