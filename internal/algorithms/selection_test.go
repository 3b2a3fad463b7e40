package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdmitsListing_BedroomsMustMatchExactly(t *testing.T) {
	p := DefaultSelectionPolicy()
	r := baseRenter()
	r.DesiredBedrooms = 2

	for _, beds := range []int{0, 1, 3, 4} {
		l := baseListing()
		l.NumBedrooms = beds
		assert.False(t, p.AdmitsListing(l, r), "bedrooms=%d", beds)
	}
	l := baseListing()
	l.NumBedrooms = 2
	assert.True(t, p.AdmitsListing(l, r))
}

func TestAdmitsListing_DateSlack(t *testing.T) {
	p := DefaultSelectionPolicy()
	l := baseListing() // 2030-05-01 .. 2030-08-31

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		ok    bool
	}{
		{"exact", time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 8, 31, 0, 0, 0, 0, time.UTC), true},
		{"start within slack", time.Date(2030, 4, 26, 0, 0, 0, 0, time.UTC), time.Date(2030, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{"start beyond slack", time.Date(2030, 4, 25, 0, 0, 0, 0, time.UTC), time.Date(2030, 8, 1, 0, 0, 0, 0, time.UTC), false},
		{"end within slack", time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 9, 5, 0, 0, 0, 0, time.UTC), true},
		{"end beyond slack", time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 9, 6, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseRenter()
			r.DesiredStartDate = datatypesDate(tt.start)
			r.DesiredEndDate = datatypesDate(tt.end)
			assert.Equal(t, tt.ok, p.AdmitsListing(l, r))
		})
	}
}

func TestAdmitsListing_PetPolicyIsOneDirectional(t *testing.T) {
	p := DefaultSelectionPolicy()

	tests := []struct {
		name        string
		hasPet      bool
		petFriendly bool
		ok          bool
	}{
		{"pet, pet friendly", true, true, true},
		{"pet, not pet friendly", true, false, false},
		{"no pet, pet friendly", false, true, true},
		{"no pet, not pet friendly", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := baseListing()
			l.PetFriendly = tt.petFriendly
			r := baseRenter()
			r.HasPet = tt.hasPet
			assert.Equal(t, tt.ok, p.AdmitsListing(l, r))
			assert.Equal(t, tt.ok, p.AdmitsRenter(r, l))
		})
	}
}

func TestAdmits_InactiveCounterpartRejected(t *testing.T) {
	p := DefaultSelectionPolicy()

	l := baseListing()
	l.IsActive = false
	assert.False(t, p.AdmitsListing(l, baseRenter()))

	r := baseRenter()
	r.IsActive = false
	assert.False(t, p.AdmitsRenter(r, baseListing()))
}

func TestAdmits_OwnListingRejected(t *testing.T) {
	p := DefaultSelectionPolicy()
	l := baseListing()
	r := baseRenter()
	r.UserID = l.UserID

	assert.False(t, p.AdmitsListing(l, r))
	assert.False(t, p.AdmitsRenter(r, l))
}

func TestBounds_MatchPredicate(t *testing.T) {
	p := SelectionPolicy{DateSlackDays: 3}
	l := baseListing()
	r := baseRenter()

	lb := p.ListingBounds(r)
	assert.Equal(t, r.Start().AddDate(0, 0, 3), lb.LatestStart)
	assert.Equal(t, r.End().AddDate(0, 0, -3), lb.EarliestEnd)

	rb := p.RenterBounds(l)
	assert.Equal(t, l.Start().AddDate(0, 0, -3), rb.EarliestStart)
	assert.Equal(t, l.End().AddDate(0, 0, 3), rb.LatestEnd)
}
