package dto

import "sublet_backend/internal/algorithms"

const (
	MessageNoMatches = "No matches found"
	MessageNoLikes   = "No likes yet: like some listings to get recommendations"
)

// ListingMatch - листинг-кандидат для арендатора
type ListingMatch struct {
	CounterpartID string `json:"counterpart_id"`
	ListingResponse
	DistanceKm float64                   `json:"distance_km"`
	Score      float64                   `json:"score"`
	Breakdown  algorithms.ScoreBreakdown `json:"breakdown"`
}

// RenterMatch - арендатор-кандидат для листинга
type RenterMatch struct {
	CounterpartID string `json:"counterpart_id"`
	RenterResponse
	DistanceKm float64                   `json:"distance_km"`
	Score      float64                   `json:"score"`
	Breakdown  algorithms.ScoreBreakdown `json:"breakdown"`
}

type MatchList[T any] struct {
	Matches []T    `json:"matches"`
	Message string `json:"message,omitempty"`
}

type RenterSwipeRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	IsRight   *bool  `json:"is_right" validate:"required"`
}

type ListingSwipeRequest struct {
	RenterProfileID string `json:"renter_profile_id" validate:"required,uuid"`
	IsRight         *bool  `json:"is_right" validate:"required"`
}

// SwipeResponse - Mutual актуален на момент записи, контрагент может
// изменить свое решение позже.
type SwipeResponse struct {
	DecisionID string `json:"decision_id"`
	IsRight    bool   `json:"is_right"`
	Mutual     bool   `json:"mutual"`
}

type MutualListings struct {
	Listings []ListingResponse `json:"listings"`
}

type MutualRenters struct {
	Renters []RenterResponse `json:"renters"`
}

type RecommendationItem struct {
	ListingResponse
	Score int `json:"score"`
}

type RecommendationsResponse struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	Message         string               `json:"message,omitempty"`
}
