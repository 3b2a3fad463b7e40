package services

import (
	"context"

	"gorm.io/gorm"

	"sublet_backend/internal/cache"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/metrics"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

type SwipeService interface {
	// RenterSwipe записывает решение арендатора по листингу. Повторный свайп
	// перезаписывает предыдущий.
	RenterSwipe(ctx context.Context, db *gorm.DB, userID string, req *dto.RenterSwipeRequest) (*dto.SwipeResponse, error)
	// ListingSwipe записывает решение владельца листинга по арендатору
	ListingSwipe(ctx context.Context, db *gorm.DB, userID, listingID string, req *dto.ListingSwipeRequest) (*dto.SwipeResponse, error)
	MutualForRenter(db *gorm.DB, userID string) (*dto.MutualListings, error)
	MutualForListing(db *gorm.DB, userID, listingID string) (*dto.MutualRenters, error)
}

type SwipeServiceImpl struct {
	swipeRepo   repositories.SwipeRepository
	renterRepo  repositories.RenterRepository
	listingRepo repositories.ListingRepository
	recsCache   cache.RecommendationCache
}

func NewSwipeService(
	swipeRepo repositories.SwipeRepository,
	renterRepo repositories.RenterRepository,
	listingRepo repositories.ListingRepository,
	recsCache cache.RecommendationCache,
) SwipeService {
	return &SwipeServiceImpl{
		swipeRepo:   swipeRepo,
		renterRepo:  renterRepo,
		listingRepo: listingRepo,
		recsCache:   recsCache,
	}
}

func (s *SwipeServiceImpl) RenterSwipe(ctx context.Context, db *gorm.DB, userID string, req *dto.RenterSwipeRequest) (*dto.SwipeResponse, error) {
	renter, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}
	isRight := *req.IsRight

	id, err := s.swipeRepo.UpsertRenterSwipe(db, renter.ID, req.ListingID, isRight)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}

	// граф лайков изменился: кэш рекомендаций сбрасывается до ответа клиенту
	invalidateRecommendations(ctx, s.recsCache, "renter_swipe")

	mutual, err := s.swipeRepo.IsMutual(db, renter.ID, req.ListingID)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}

	metrics.RecordSwipe("renter", isRight, mutual)
	logger.CtxInfo(ctx, "renter swipe recorded",
		"renter_profile_id", renter.ID,
		"listing_id", req.ListingID,
		"is_right", isRight,
		"mutual", mutual,
	)
	return &dto.SwipeResponse{DecisionID: id, IsRight: isRight, Mutual: mutual}, nil
}

func (s *SwipeServiceImpl) ListingSwipe(ctx context.Context, db *gorm.DB, userID, listingID string, req *dto.ListingSwipeRequest) (*dto.SwipeResponse, error) {
	listing, err := ownedListing(db, s.listingRepo, userID, listingID)
	if err != nil {
		return nil, err
	}
	isRight := *req.IsRight

	id, err := s.swipeRepo.UpsertListingSwipe(db, listing.ID, req.RenterProfileID, isRight)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}

	mutual, err := s.swipeRepo.IsMutual(db, req.RenterProfileID, listing.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}

	metrics.RecordSwipe("listing", isRight, mutual)
	logger.CtxInfo(ctx, "listing swipe recorded",
		"listing_id", listing.ID,
		"renter_profile_id", req.RenterProfileID,
		"is_right", isRight,
		"mutual", mutual,
	)
	return &dto.SwipeResponse{DecisionID: id, IsRight: isRight, Mutual: mutual}, nil
}

func (s *SwipeServiceImpl) MutualForRenter(db *gorm.DB, userID string) (*dto.MutualListings, error) {
	renter, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}
	listings, err := s.swipeRepo.MutualListingsForRenter(db, renter.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}
	return &dto.MutualListings{Listings: dto.NewListingResponses(listings)}, nil
}

func (s *SwipeServiceImpl) MutualForListing(db *gorm.DB, userID, listingID string) (*dto.MutualRenters, error) {
	listing, err := ownedListing(db, s.listingRepo, userID, listingID)
	if err != nil {
		return nil, err
	}
	renters, err := s.swipeRepo.MutualRentersForListing(db, listing.ID)
	if err != nil {
		return nil, apperrors.FromDB(err, "swipe")
	}
	return &dto.MutualRenters{Renters: dto.NewRenterResponses(renters)}, nil
}
