package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sublet_backend/internal/cache"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

// timeNow подменяется в тестах
var timeNow = time.Now

type ListingService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	Get(db *gorm.DB, listingID string) (*dto.ListingResponse, error)
	Mine(db *gorm.DB, userID string) ([]dto.ListingResponse, error)
	Patch(ctx context.Context, db *gorm.DB, userID, listingID string, req *dto.PatchListingRequest) (*dto.ListingResponse, error)
	SetActive(ctx context.Context, db *gorm.DB, userID, listingID string, active bool) (*dto.ListingResponse, error)
}

type ListingServiceImpl struct {
	listingRepo  repositories.ListingRepository
	locationRepo repositories.LocationRepository
	geocoder     Geocoder
	recsCache    cache.RecommendationCache
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	locationRepo repositories.LocationRepository,
	geocoder Geocoder,
	recsCache cache.RecommendationCache,
) ListingService {
	return &ListingServiceImpl{
		listingRepo:  listingRepo,
		locationRepo: locationRepo,
		geocoder:     geocoder,
		recsCache:    recsCache,
	}
}

// Create геокодирует адрес вне транзакции, затем одной транзакцией пишет
// локацию, листинг, амениты и фото.
func (s *ListingServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, apperrors.NewValidationError("listing", "address is required")
	}
	start, end, err := parseRange(req.StartDate, req.EndDate, "start_date", "end_date")
	if err != nil {
		return nil, err
	}
	if !start.After(models.DateOnly(timeNow())) {
		return nil, apperrors.NewValidationError("listing", "start_date must be in the future")
	}

	place, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		logger.CtxWithError(ctx, "listing address not geocoded", err, "address", address)
		return nil, geocodeError(err, address)
	}

	listing := &models.Listing{
		UserID:         userID,
		IsActive:       true,
		StartDate:      datatypes.Date(start),
		EndDate:        datatypes.Date(end),
		TenantAge:      req.TenantAge,
		TargetGender:   dto.GenderPtr(req.TenantGender),
		AskingPrice:    req.AskingPrice,
		BuildingTypeID: req.BuildingTypeID,
		NumBedrooms:    req.NumBedrooms,
		NumBathrooms:   req.NumBathrooms,
		PetFriendly:    req.PetFriendly,
		UtilitiesIncl:  req.UtilitiesIncl,
		Description:    req.Description,
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
	listing.LocationID = loc.ID

	if err := s.listingRepo.Create(tx, listing); err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}
	if err := s.listingRepo.ReplaceAmenities(tx, listing.ID, req.Amenities); err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}
	if err := s.listingRepo.ReplacePhotos(tx, listing.ID, dto.PhotosFromInput(req.Photos)); err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrStore(err, "listing")
	}

	logger.CtxInfo(ctx, "listing created", "listing_id", listing.ID, "location_id", loc.ID)
	return s.Get(db, listing.ID)
}

func (s *ListingServiceImpl) Get(db *gorm.DB, listingID string) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(db, listingID)
	if err != nil {
		appErr := apperrors.FromDB(err, "listing")
		if apperrors.HasCode(appErr, apperrors.CodeNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, appErr
	}
	resp := dto.NewListingResponse(listing)
	return &resp, nil
}

func (s *ListingServiceImpl) Mine(db *gorm.DB, userID string) ([]dto.ListingResponse, error) {
	listings, err := s.listingRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}
	return dto.NewListingResponses(listings), nil
}

// Patch применяет только переданные поля. Новый адрес геокодируется до
// транзакции; смена локации, полей, аменитов и фото коммитится вместе.
func (s *ListingServiceImpl) Patch(ctx context.Context, db *gorm.DB, userID, listingID string, req *dto.PatchListingRequest) (*dto.ListingResponse, error) {
	listing, err := ownedListing(db, s.listingRepo, userID, listingID)
	if err != nil {
		return nil, err
	}

	var address string
	if req.Address != nil {
		address = strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, apperrors.NewValidationError("listing", "address must not be empty")
		}
	}
	if err := dto.ApplyListingPatch(listing, req); err != nil {
		return nil, err
	}

	var place *models.ResolvedPlace
	if address != "" {
		place, err = s.geocoder.Geocode(ctx, address)
		if err != nil {
			logger.CtxWithError(ctx, "listing address not geocoded", err, "address", address)
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
		listing.LocationID = loc.ID
		listing.Location = *loc
	}

	if err := s.listingRepo.Update(tx, listing); err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}
	if req.Amenities.Set {
		if err := s.listingRepo.ReplaceAmenities(tx, listing.ID, req.Amenities.Value); err != nil {
			return nil, apperrors.FromDB(err, "listing")
		}
	}
	if req.Photos.Set {
		if err := s.listingRepo.ReplacePhotos(tx, listing.ID, dto.PhotosFromInput(req.Photos.Value)); err != nil {
			return nil, apperrors.FromDB(err, "listing")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.ErrStore(err, "listing")
	}
	invalidateRecommendations(ctx, s.recsCache, "listing_patch")
	return s.Get(db, listing.ID)
}

func (s *ListingServiceImpl) SetActive(ctx context.Context, db *gorm.DB, userID, listingID string, active bool) (*dto.ListingResponse, error) {
	listing, err := ownedListing(db, s.listingRepo, userID, listingID)
	if err != nil {
		return nil, err
	}
	if err := s.listingRepo.SetActive(db, listing.ID, active); err != nil {
		return nil, apperrors.FromDB(err, "listing")
	}
	invalidateRecommendations(ctx, s.recsCache, "listing_set_active")
	listing.IsActive = active
	resp := dto.NewListingResponse(listing)
	return &resp, nil
}

// parseRange разбирает пару дат и проверяет start < end
func parseRange(startStr, endStr, startField, endField string) (time.Time, time.Time, error) {
	start, err := dto.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("request", startField+" must be a date in YYYY-MM-DD format")
	}
	end, err := dto.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("request", endField+" must be a date in YYYY-MM-DD format")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("request", startField+" must be before "+endField)
	}
	return start, end, nil
}
