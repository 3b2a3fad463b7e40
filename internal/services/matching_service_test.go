package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/models"
	"sublet_backend/internal/services/dto"
	"sublet_backend/pkg/apperrors"
)

func newMatchingFixture() (*fakeRenterRepo, *fakeListingRepo, *fakeCandidateRepo, MatchingService) {
	renters := &fakeRenterRepo{byUser: map[string]*models.RenterProfile{}}
	listings := &fakeListingRepo{byID: map[string]*models.Listing{}}
	candidates := &fakeCandidateRepo{}
	svc := NewMatchingService(renters, listings, candidates,
		algorithms.DefaultScoringParams(), algorithms.DefaultSelectionPolicy(), 100)
	return renters, listings, candidates, svc
}

func TestListingMatchesForRenter_RanksByScore(t *testing.T) {
	renters, _, candidates, svc := newMatchingFixture()
	renters.byUser["u-renter"] = renterProfile("r1", "u-renter")

	// дальний и дешевый, близкий и дорогой, близкий и дешевый
	far := listing("far", "u-owner", 45.5017, -73.5673, 900)
	pricey := listing("pricey", "u-owner", 43.6532, -79.3832, 1500)
	best := listing("best", "u-owner", 43.6540, -79.3840, 900)
	candidates.listings = []models.Listing{*far, *pricey, *best}

	res, err := svc.ListingMatchesForRenter(context.Background(), nil, "u-renter")
	require.NoError(t, err)
	require.Len(t, res.Matches, 3)
	assert.Empty(t, res.Message)

	assert.Equal(t, "best", res.Matches[0].CounterpartID)
	for i := 1; i < len(res.Matches); i++ {
		assert.GreaterOrEqual(t, res.Matches[i-1].Score, res.Matches[i].Score)
	}
	for _, m := range res.Matches {
		assert.Equal(t, m.Score, m.Breakdown.Total)
		assert.Greater(t, m.Score, 0.0)
	}
	assert.Greater(t, res.Matches[2].DistanceKm+res.Matches[1].DistanceKm, 400.0)
}

func TestListingMatchesForRenter_Empty(t *testing.T) {
	renters, _, _, svc := newMatchingFixture()
	renters.byUser["u-renter"] = renterProfile("r1", "u-renter")

	res, err := svc.ListingMatchesForRenter(context.Background(), nil, "u-renter")
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.NotNil(t, res.Matches)
	assert.Equal(t, dto.MessageNoMatches, res.Message)
}

func TestListingMatchesForRenter_DropsInadmissible(t *testing.T) {
	renters, _, candidates, svc := newMatchingFixture()
	renters.byUser["u-renter"] = renterProfile("r1", "u-renter")

	own := listing("own", "u-renter", 43.65, -79.38, 900)
	threeBeds := listing("three", "u-owner", 43.65, -79.38, 900)
	threeBeds.NumBedrooms = 3
	candidates.listings = []models.Listing{*own, *threeBeds}

	res, err := svc.ListingMatchesForRenter(context.Background(), nil, "u-renter")
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestListingMatchesForRenter_NoProfile(t *testing.T) {
	_, _, _, svc := newMatchingFixture()

	_, err := svc.ListingMatchesForRenter(context.Background(), nil, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrRenterProfileNotFound)
}

func TestRenterMatchesForListing(t *testing.T) {
	_, listings, candidates, svc := newMatchingFixture()
	listings.byID["l1"] = listing("l1", "u-owner", 43.6532, -79.3832, 1000)

	near := renterProfile("near", "u-a")
	far := renterProfile("far", "u-b")
	far.Location = location("loc-far", 45.5017, -73.5673)
	candidates.renters = []models.RenterProfile{*far, *near}

	t.Run("owner gets ranked renters", func(t *testing.T) {
		res, err := svc.RenterMatchesForListing(context.Background(), nil, "u-owner", "l1")
		require.NoError(t, err)
		require.Len(t, res.Matches, 2)
		assert.Equal(t, "near", res.Matches[0].CounterpartID)
		assert.InDelta(t, 0, res.Matches[0].DistanceKm, 0.001)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := svc.RenterMatchesForListing(context.Background(), nil, "u-a", "l1")
		assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := svc.RenterMatchesForListing(context.Background(), nil, "u-owner", "missing")
		assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
	})
}
