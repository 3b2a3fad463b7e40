package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sublet_backend/internal/logger"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

type RenterService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateRenterRequest) (*dto.RenterResponse, error)
	GetMine(db *gorm.DB, userID string) (*dto.RenterResponse, error)
	PatchMine(ctx context.Context, db *gorm.DB, userID string, req *dto.PatchRenterRequest) (*dto.RenterResponse, error)
}

type RenterServiceImpl struct {
	renterRepo   repositories.RenterRepository
	locationRepo repositories.LocationRepository
	geocoder     Geocoder
}

func NewRenterService(
	renterRepo repositories.RenterRepository,
	locationRepo repositories.LocationRepository,
	geocoder Geocoder,
) RenterService {
	return &RenterServiceImpl{
		renterRepo:   renterRepo,
		locationRepo: locationRepo,
		geocoder:     geocoder,
	}
}

func (s *RenterServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateRenterRequest) (*dto.RenterResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, apperrors.NewValidationError("renter", "address is required")
	}
	start, end, err := parseRange(req.DesiredStartDate, req.DesiredEndDate, "desired_start_date", "desired_end_date")
	if err != nil {
		return nil, err
	}

	_, err = s.renterRepo.FindByUserID(db, userID)
	switch {
	case err == nil:
		return nil, apperrors.ErrRenterProfileExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.FromDB(err, "renter")
	}

	place, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		logger.CtxWithError(ctx, "renter address not geocoded", err, "address", address)
		return nil, geocodeError(err, address)
	}

	profile := &models.RenterProfile{
		UserID:           userID,
		IsActive:         true,
		DesiredStartDate: datatypes.Date(start),
		DesiredEndDate:   datatypes.Date(end),
		Age:              req.Age,
		Gender:           dto.GenderPtr(req.Gender),
		Budget:           req.Budget,
		DesiredBedrooms:  req.DesiredBedrooms,
		DesiredBathrooms: req.DesiredBathrooms,
		HasPet:           req.HasPet,
		BuildingTypeID:   req.BuildingTypeID,
		Bio:              req.Bio,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	loc, err := s.locationRepo.FindOrCreate(tx, *place)
	if err != nil {
		return nil, apperrors.FromDB(err, "location")
	}
	profile.LocationID = loc.ID
	profile.Location = *loc

	if err := s.renterRepo.Create(tx, profile); err != nil {
		// параллельное создание упирается в уникальный индекс по user_id
		appErr := apperrors.FromDB(err, "renter")
		if apperrors.HasCode(appErr, apperrors.CodeConflict) {
			return nil, apperrors.ErrRenterProfileExists
		}
		return nil, appErr
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrStore(err, "renter")
	}

	logger.CtxInfo(ctx, "renter profile created", "renter_profile_id", profile.ID)
	resp := dto.NewRenterResponse(profile)
	return &resp, nil
}

func (s *RenterServiceImpl) GetMine(db *gorm.DB, userID string) (*dto.RenterResponse, error) {
	profile, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRenterResponse(profile)
	return &resp, nil
}

func (s *RenterServiceImpl) PatchMine(ctx context.Context, db *gorm.DB, userID string, req *dto.PatchRenterRequest) (*dto.RenterResponse, error) {
	profile, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}

	var address string
	if req.Address != nil {
		address = strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, apperrors.NewValidationError("renter", "address must not be empty")
		}
	}
	if err := dto.ApplyRenterPatch(profile, req); err != nil {
		return nil, err
	}

	var place *models.ResolvedPlace
	if address != "" {
		place, err = s.geocoder.Geocode(ctx, address)
		if err != nil {
			logger.CtxWithError(ctx, "renter address not geocoded", err, "address", address)
			return nil, geocodeError(err, address)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if place != nil {
		loc, err := s.locationRepo.FindOrCreate(tx, *place)
		if err != nil {
			return nil, apperrors.FromDB(err, "location")
		}
		profile.LocationID = loc.ID
		profile.Location = *loc
	}
	if err := s.renterRepo.Update(tx, profile); err != nil {
		return nil, apperrors.FromDB(err, "renter")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrStore(err, "renter")
	}
	resp := dto.NewRenterResponse(profile)
	return &resp, nil
}
