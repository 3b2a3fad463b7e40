package services

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/geocoding"
	"sublet_backend/internal/models"
)

// Фейки репозиториев держат данные в памяти и игнорируют *gorm.DB.

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
	seq       int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	user.ID = "user-" + string(rune('0'+f.seq))
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(_ *gorm.DB, id string) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeRenterRepo struct {
	byUser map[string]*models.RenterProfile
}

func (f *fakeRenterRepo) Create(_ *gorm.DB, p *models.RenterProfile) error {
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeRenterRepo) Update(_ *gorm.DB, p *models.RenterProfile) error {
	f.byUser[p.UserID] = p
	return nil
}

func (f *fakeRenterRepo) FindByID(_ *gorm.DB, id string) (*models.RenterProfile, error) {
	for _, p := range f.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRenterRepo) FindByUserID(_ *gorm.DB, userID string) (*models.RenterProfile, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeListingRepo struct {
	byID map[string]*models.Listing
}

func (f *fakeListingRepo) Create(_ *gorm.DB, l *models.Listing) error {
	f.byID[l.ID] = l
	return nil
}

func (f *fakeListingRepo) Update(_ *gorm.DB, l *models.Listing) error {
	f.byID[l.ID] = l
	return nil
}

func (f *fakeListingRepo) FindByID(_ *gorm.DB, id string) (*models.Listing, error) {
	if l, ok := f.byID[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeListingRepo) FindByUserID(_ *gorm.DB, userID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range f.byID {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) FindActiveByIDs(_ *gorm.DB, ids []string) ([]models.Listing, error) {
	var out []models.Listing
	for _, id := range ids {
		if l, ok := f.byID[id]; ok && l.IsActive {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) SetActive(_ *gorm.DB, id string, active bool) error {
	l, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.IsActive = active
	return nil
}

func (f *fakeListingRepo) ReplaceAmenities(*gorm.DB, string, []uint) error      { return nil }
func (f *fakeListingRepo) ReplacePhotos(*gorm.DB, string, []models.Photo) error { return nil }
func (f *fakeListingRepo) DeactivateExpired(*gorm.DB, time.Time) (int64, error) { return 0, nil }

type fakeCandidateRepo struct {
	listings []models.Listing
	renters  []models.RenterProfile
}

func (f *fakeCandidateRepo) ListingCandidates(*gorm.DB, *models.RenterProfile, algorithms.SelectionPolicy, int) ([]models.Listing, error) {
	return f.listings, nil
}

func (f *fakeCandidateRepo) RenterCandidates(*gorm.DB, *models.Listing, algorithms.SelectionPolicy, int) ([]models.RenterProfile, error) {
	return f.renters, nil
}

type swipeKey struct{ renter, listing string }

type fakeSwipeRepo struct {
	renterSwipes  map[swipeKey]bool
	listingSwipes map[swipeKey]bool
	likeGraphHits int
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{
		renterSwipes:  map[swipeKey]bool{},
		listingSwipes: map[swipeKey]bool{},
	}
}

func (f *fakeSwipeRepo) UpsertRenterSwipe(_ *gorm.DB, renterID, listingID string, isRight bool) (string, error) {
	f.renterSwipes[swipeKey{renterID, listingID}] = isRight
	return "rs-" + renterID + "-" + listingID, nil
}

func (f *fakeSwipeRepo) UpsertListingSwipe(_ *gorm.DB, listingID, renterID string, isRight bool) (string, error) {
	f.listingSwipes[swipeKey{renterID, listingID}] = isRight
	return "ls-" + listingID + "-" + renterID, nil
}

func (f *fakeSwipeRepo) FindRenterSwipe(*gorm.DB, string, string) (*models.RenterSwipe, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSwipeRepo) FindListingSwipe(*gorm.DB, string, string) (*models.ListingSwipe, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSwipeRepo) IsMutual(_ *gorm.DB, renterID, listingID string) (bool, error) {
	k := swipeKey{renterID, listingID}
	return f.renterSwipes[k] && f.listingSwipes[k], nil
}

func (f *fakeSwipeRepo) MutualListingsForRenter(*gorm.DB, string) ([]models.Listing, error) {
	return nil, nil
}

func (f *fakeSwipeRepo) MutualRentersForListing(*gorm.DB, string) ([]models.RenterProfile, error) {
	return nil, nil
}

func (f *fakeSwipeRepo) LikeGraph(_ *gorm.DB, _ string, _ int) ([]algorithms.Like, error) {
	f.likeGraphHits++
	var likes []algorithms.Like
	for k, right := range f.renterSwipes {
		if right {
			likes = append(likes, algorithms.Like{RenterProfileID: k.renter, ListingID: k.listing})
		}
	}
	return likes, nil
}

type fakeGeocoder struct {
	place *models.ResolvedPlace
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(context.Context, string) (*models.ResolvedPlace, error) {
	f.calls++
	return f.place, f.err
}

type fakeSuggester struct {
	predictions []geocoding.Prediction
	err         error
}

func (f *fakeSuggester) Autocomplete(context.Context, string) ([]geocoding.Prediction, error) {
	return f.predictions, f.err
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID, _ string) (string, time.Time, error) {
	return "token-" + userID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type countingCache struct {
	invalidations int
	err           error
}

func (c *countingCache) Lookup(context.Context, string, interface{}) (bool, int64, error) {
	return false, 0, c.err
}

func (c *countingCache) Store(context.Context, string, int64, interface{}) error { return c.err }

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return c.err
}

func date(s string) datatypes.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func location(id string, lat, lng float64) models.Location {
	return models.Location{BaseModel: models.BaseModel{ID: id}, PlaceID: "place-" + id, Address: id, Latitude: lat, Longitude: lng}
}

func renterProfile(id, userID string) *models.RenterProfile {
	return &models.RenterProfile{
		BaseModel:        models.BaseModel{ID: id},
		UserID:           userID,
		IsActive:         true,
		Location:         location("loc-"+id, 43.6532, -79.3832),
		DesiredStartDate: date("2030-05-01"),
		DesiredEndDate:   date("2030-08-31"),
		Age:              25,
		Budget:           1000,
		DesiredBedrooms:  2,
		DesiredBathrooms: 1,
	}
}

func listing(id, userID string, lat, lng, price float64) *models.Listing {
	return &models.Listing{
		BaseModel:     models.BaseModel{ID: id},
		UserID:        userID,
		IsActive:      true,
		Location:      location("loc-"+id, lat, lng),
		StartDate:     date("2030-05-01"),
		EndDate:       date("2030-08-31"),
		AskingPrice:   price,
		NumBedrooms:   2,
		NumBathrooms:  1,
		UtilitiesIncl: true,
	}
}
