package services

import (
	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/cache"
	"sublet_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService           AuthService
	UserService           UserService
	ListingService        ListingService
	RenterService         RenterService
	MatchingService       MatchingService
	SwipeService          SwipeService
	RecommendationService RecommendationService
	ReferenceService      ReferenceService
	LocationService       LocationService
}

// Dependencies - внешние коллабораторы и настройки, нужные сервисам
type Dependencies struct {
	Tokens         TokenIssuer
	Geocoder       Geocoder
	Suggester      PlaceSuggester
	RecsCache      cache.RecommendationCache
	Scoring        algorithms.ScoringParams
	Selection      algorithms.SelectionPolicy
	CandidateLimit int
	TopN           int
	ScanLimit      int
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	locationRepo := repositories.NewLocationRepository()
	listingRepo := repositories.NewListingRepository()
	renterRepo := repositories.NewRenterRepository()
	swipeRepo := repositories.NewSwipeRepository()
	candidateRepo := repositories.NewCandidateRepository()
	refRepo := repositories.NewReferenceRepository()

	recsCache := deps.RecsCache
	if recsCache == nil {
		recsCache = cache.NoopRecommendationCache{}
	}

	return &ServiceContainer{
		AuthService:           NewAuthService(userRepo, deps.Tokens),
		UserService:           NewUserService(userRepo, recsCache),
		ListingService:        NewListingService(listingRepo, locationRepo, deps.Geocoder, recsCache),
		RenterService:         NewRenterService(renterRepo, locationRepo, deps.Geocoder),
		MatchingService:       NewMatchingService(renterRepo, listingRepo, candidateRepo, deps.Scoring, deps.Selection, deps.CandidateLimit),
		SwipeService:          NewSwipeService(swipeRepo, renterRepo, listingRepo, recsCache),
		RecommendationService: NewRecommendationService(renterRepo, listingRepo, swipeRepo, recsCache, deps.TopN, deps.ScanLimit),
		ReferenceService:      NewReferenceService(refRepo),
		LocationService:       NewLocationService(deps.Suggester),
	}
}
