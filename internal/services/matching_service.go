package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/metrics"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

type MatchingService interface {
	// ListingMatchesForRenter - листинги для профиля арендатора пользователя
	ListingMatchesForRenter(ctx context.Context, db *gorm.DB, userID string) (*dto.MatchList[dto.ListingMatch], error)
	// RenterMatchesForListing - арендаторы для листинга, которым владеет пользователь
	RenterMatchesForListing(ctx context.Context, db *gorm.DB, userID, listingID string) (*dto.MatchList[dto.RenterMatch], error)
}

type MatchingServiceImpl struct {
	renterRepo     repositories.RenterRepository
	listingRepo    repositories.ListingRepository
	candidateRepo  repositories.CandidateRepository
	params         algorithms.ScoringParams
	policy         algorithms.SelectionPolicy
	candidateLimit int
}

func NewMatchingService(
	renterRepo repositories.RenterRepository,
	listingRepo repositories.ListingRepository,
	candidateRepo repositories.CandidateRepository,
	params algorithms.ScoringParams,
	policy algorithms.SelectionPolicy,
	candidateLimit int,
) MatchingService {
	return &MatchingServiceImpl{
		renterRepo:     renterRepo,
		listingRepo:    listingRepo,
		candidateRepo:  candidateRepo,
		params:         params,
		policy:         policy,
		candidateLimit: candidateLimit,
	}
}

func (s *MatchingServiceImpl) ListingMatchesForRenter(ctx context.Context, db *gorm.DB, userID string) (*dto.MatchList[dto.ListingMatch], error) {
	started := time.Now()

	renter, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}

	listings, err := s.candidateRepo.ListingCandidates(db, renter, s.policy, s.candidateLimit)
	if err != nil {
		return nil, apperrors.FromDB(err, "matching")
	}

	origin := renter.Location.Point()
	scored := make([]algorithms.Scored[*models.Listing], 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if !s.policy.AdmitsListing(l, renter) {
			continue
		}
		km := origin.DistanceKm(l.Location.Point())
		scored = append(scored, algorithms.Scored[*models.Listing]{
			Item:       l,
			DistanceKm: km,
			Score:      s.params.Score(l, renter, km),
		})
	}
	algorithms.RankMatches(scored)

	result := &dto.MatchList[dto.ListingMatch]{Matches: make([]dto.ListingMatch, 0, len(scored))}
	for _, m := range scored {
		result.Matches = append(result.Matches, dto.ListingMatch{
			CounterpartID:   m.Item.ID,
			ListingResponse: dto.NewListingResponse(m.Item),
			DistanceKm:      m.DistanceKm,
			Score:           m.Score.Total,
			Breakdown:       m.Score,
		})
	}
	if len(result.Matches) == 0 {
		result.Message = dto.MessageNoMatches
	}

	metrics.RecordMatch("renter", len(result.Matches))
	logger.MatchLog("renter", renter.ID, len(result.Matches), time.Since(started))
	logger.CtxDebug(ctx, "listing matches served", "renter_profile_id", renter.ID, "count", len(result.Matches))
	return result, nil
}

func (s *MatchingServiceImpl) RenterMatchesForListing(ctx context.Context, db *gorm.DB, userID, listingID string) (*dto.MatchList[dto.RenterMatch], error) {
	started := time.Now()

	listing, err := ownedListing(db, s.listingRepo, userID, listingID)
	if err != nil {
		return nil, err
	}

	renters, err := s.candidateRepo.RenterCandidates(db, listing, s.policy, s.candidateLimit)
	if err != nil {
		return nil, apperrors.FromDB(err, "matching")
	}

	origin := listing.Location.Point()
	scored := make([]algorithms.Scored[*models.RenterProfile], 0, len(renters))
	for i := range renters {
		r := &renters[i]
		if !s.policy.AdmitsRenter(r, listing) {
			continue
		}
		km := origin.DistanceKm(r.Location.Point())
		scored = append(scored, algorithms.Scored[*models.RenterProfile]{
			Item:       r,
			DistanceKm: km,
			Score:      s.params.Score(listing, r, km),
		})
	}
	algorithms.RankMatches(scored)

	result := &dto.MatchList[dto.RenterMatch]{Matches: make([]dto.RenterMatch, 0, len(scored))}
	for _, m := range scored {
		result.Matches = append(result.Matches, dto.RenterMatch{
			CounterpartID:  m.Item.ID,
			RenterResponse: dto.NewRenterResponse(m.Item),
			DistanceKm:     m.DistanceKm,
			Score:          m.Score.Total,
			Breakdown:      m.Score,
		})
	}
	if len(result.Matches) == 0 {
		result.Message = dto.MessageNoMatches
	}

	metrics.RecordMatch("listing", len(result.Matches))
	logger.MatchLog("listing", listing.ID, len(result.Matches), time.Since(started))
	logger.CtxDebug(ctx, "renter matches served", "listing_id", listing.ID, "count", len(result.Matches))
	return result, nil
}
