package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/cache"
	"sublet_backend/internal/logger"
	"sublet_backend/internal/metrics"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

type RecommendationService interface {
	ForRenter(ctx context.Context, db *gorm.DB, userID string) (*dto.RecommendationsResponse, error)
}

type RecommendationServiceImpl struct {
	renterRepo  repositories.RenterRepository
	listingRepo repositories.ListingRepository
	swipeRepo   repositories.SwipeRepository
	recsCache   cache.RecommendationCache
	topN        int
	scanLimit   int
}

func NewRecommendationService(
	renterRepo repositories.RenterRepository,
	listingRepo repositories.ListingRepository,
	swipeRepo repositories.SwipeRepository,
	recsCache cache.RecommendationCache,
	topN, scanLimit int,
) RecommendationService {
	return &RecommendationServiceImpl{
		renterRepo:  renterRepo,
		listingRepo: listingRepo,
		swipeRepo:   swipeRepo,
		recsCache:   recsCache,
		topN:        topN,
		scanLimit:   scanLimit,
	}
}

// ForRenter - коллаборативная фильтрация по лайкам похожих арендаторов.
// Ошибки кэша не ломают запрос, результат просто считается заново.
func (s *RecommendationServiceImpl) ForRenter(ctx context.Context, db *gorm.DB, userID string) (*dto.RecommendationsResponse, error) {
	started := time.Now()
	defer func() { metrics.RecommendationDuration.Observe(time.Since(started).Seconds()) }()

	renter, err := renterOf(db, s.renterRepo, userID)
	if err != nil {
		return nil, err
	}

	var cached dto.RecommendationsResponse
	hit, generation, lookupErr := s.recsCache.Lookup(ctx, renter.ID, &cached)
	if lookupErr != nil {
		logger.CtxWithError(ctx, "recommendation cache lookup failed", lookupErr)
	}
	metrics.RecordRecommendationCache(hit)
	if hit {
		return &cached, nil
	}

	resp, err := s.compute(db, renter.ID)
	if err != nil {
		return nil, err
	}

	// при ошибке Lookup поколение неизвестно, сохранять нельзя
	if lookupErr == nil {
		if storeErr := s.recsCache.Store(ctx, renter.ID, generation, resp); storeErr != nil {
			logger.CtxWithError(ctx, "recommendation cache store failed", storeErr)
		}
	}
	return resp, nil
}

func (s *RecommendationServiceImpl) compute(db *gorm.DB, renterID string) (*dto.RecommendationsResponse, error) {
	likes, err := s.swipeRepo.LikeGraph(db, renterID, s.scanLimit)
	if err != nil {
		return nil, apperrors.FromDB(err, "recommendation")
	}

	scores, liked := algorithms.CollaborativeScores(renterID, likes)
	if len(liked) == 0 {
		return &dto.RecommendationsResponse{
			Recommendations: []dto.RecommendationItem{},
			Message:         dto.MessageNoLikes,
		}, nil
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	listings, err := s.listingRepo.FindActiveByIDs(db, ids)
	if err != nil {
		return nil, apperrors.FromDB(err, "recommendation")
	}

	byID := make(map[string]*models.Listing, len(listings))
	recs := make([]algorithms.Recommendation, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		byID[l.ID] = l
		recs = append(recs, algorithms.Recommendation{
			ListingID: l.ID,
			Score:     scores[l.ID],
			StartDate: l.Start(),
		})
	}
	recs = algorithms.RankRecommendations(recs, s.topN)

	resp := &dto.RecommendationsResponse{Recommendations: make([]dto.RecommendationItem, 0, len(recs))}
	for _, rec := range recs {
		resp.Recommendations = append(resp.Recommendations, dto.RecommendationItem{
			ListingResponse: dto.NewListingResponse(byID[rec.ListingID]),
			Score:           rec.Score,
		})
	}
	return resp, nil
}

// invalidateRecommendations вызывается после коммита любой записи, меняющей
// граф лайков или видимые поля листингов. Ошибка только логируется.
func invalidateRecommendations(ctx context.Context, recsCache cache.RecommendationCache, reason string) {
	if err := recsCache.Invalidate(ctx); err != nil {
		logger.CtxWithError(ctx, "recommendation cache invalidation failed", err, "reason", reason)
	}
}
