//go:build integration

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sublet_backend/internal/cache"
	"sublet_backend/internal/models"
	"sublet_backend/internal/repositories"
	"sublet_backend/internal/services"
	"sublet_backend/internal/services/dto"
	"sublet_backend/internal/testinfra"
	"sublet_backend/pkg/apperrors"
)

type staticGeocoder struct {
	place models.ResolvedPlace
}

func (g staticGeocoder) Geocode(context.Context, string) (*models.ResolvedPlace, error) {
	p := g.place
	return &p, nil
}

func torontoPlace(placeID string) staticGeocoder {
	return staticGeocoder{place: models.ResolvedPlace{
		PlaceID:   placeID,
		Address:   "100 Queen St W, Toronto",
		Latitude:  43.6532,
		Longitude: -79.3832,
	}}
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{FirstName: "Test", LastName: "Owner", Email: "owner@test.com", PasswordHash: "x"}
	require.NoError(t, repositories.NewUserRepository().Create(db, u))
	return u
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func newListingService(geo services.Geocoder) services.ListingService {
	return services.NewListingService(
		repositories.NewListingRepository(),
		repositories.NewLocationRepository(),
		geo,
		cache.NoopRecommendationCache{},
	)
}

func listingRequest(amenities ...uint) *dto.CreateListingRequest {
	return &dto.CreateListingRequest{
		Address:     "100 Queen St W, Toronto",
		StartDate:   "2030-05-01",
		EndDate:     "2030-08-31",
		AskingPrice: 1200,
		NumBedrooms: 2,
		Amenities:   amenities,
		Photos:      []dto.PhotoInput{{URL: "https://img.test/1.jpg", Label: "kitchen"}},
	}
}

func TestCreateTransactions(t *testing.T) {
	db := testinfra.NewTestDB(t)
	ctx := context.Background()

	t.Run("listing create commits location, listing, amenities and photos", func(t *testing.T) {
		testinfra.Truncate(t, db)
		owner := createUser(t, db)
		amenities, err := repositories.NewReferenceRepository().ListAmenities(db)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(amenities), 2)

		res, err := newListingService(torontoPlace("place-ok")).
			Create(ctx, db, owner.ID, listingRequest(amenities[0].ID, amenities[1].ID))
		require.NoError(t, err)

		assert.EqualValues(t, 1, count(t, db, &models.Location{}, "place_id = ?", "place-ok"))
		assert.EqualValues(t, 1, count(t, db, &models.Listing{}, "id = ?", res.ID))
		assert.EqualValues(t, 1, count(t, db, &models.Photo{}, "listing_id = ?", res.ID))
		assert.Len(t, res.Amenities, 2)
		assert.Len(t, res.Photos, 1)
		assert.Equal(t, "2030-05-01", res.StartDate)
	})

	t.Run("failed amenity insert rolls back listing and location", func(t *testing.T) {
		testinfra.Truncate(t, db)
		owner := createUser(t, db)

		_, err := newListingService(torontoPlace("place-rollback")).
			Create(ctx, db, owner.ID, listingRequest(999999))
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Amenity does not exist", appErr.Message)

		assert.Zero(t, count(t, db, &models.Listing{}, ""))
		assert.Zero(t, count(t, db, &models.Photo{}, ""))
		assert.Zero(t, count(t, db, &models.Location{}, "place_id = ?", "place-rollback"))
	})

	t.Run("renter create commits and rolls back as a unit", func(t *testing.T) {
		testinfra.Truncate(t, db)
		user := createUser(t, db)
		svc := services.NewRenterService(
			repositories.NewRenterRepository(),
			repositories.NewLocationRepository(),
			torontoPlace("place-renter"),
		)
		req := &dto.CreateRenterRequest{
			Address:          "100 Queen St W, Toronto",
			DesiredStartDate: "2030-05-01",
			DesiredEndDate:   "2030-08-31",
			Age:              25,
			Budget:           1000,
			DesiredBedrooms:  2,
		}

		missing := uint(999999)
		bad := *req
		bad.BuildingTypeID = &missing
		_, err := svc.Create(ctx, db, user.ID, &bad)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
		assert.Zero(t, count(t, db, &models.RenterProfile{}, ""))
		assert.Zero(t, count(t, db, &models.Location{}, "place_id = ?", "place-renter"))

		res, err := svc.Create(ctx, db, user.ID, req)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count(t, db, &models.RenterProfile{}, "id = ?", res.ID))
		assert.EqualValues(t, 1, count(t, db, &models.Location{}, "id = ?", res.LocationID))
	})
}
