package dto

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"sublet_backend/internal/models"
	"sublet_backend/pkg/apperrors"
)

func d(y int, m time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

func ptr[T any](v T) *T { return &v }

func originalListing() models.Listing {
	female := models.GenderFemale
	return models.Listing{
		StartDate:      d(2030, 5, 1),
		EndDate:        d(2030, 8, 31),
		TenantAge:      ptr(25),
		TargetGender:   &female,
		AskingPrice:    1400,
		BuildingTypeID: ptr(uint(1)),
		NumBedrooms:    2,
		NumBathrooms:   1,
		PetFriendly:    false,
		UtilitiesIncl:  false,
		Description:    "original",
	}
}

type listingField struct {
	name  string
	apply func(p *PatchListingRequest)
	check func(t *testing.T, got models.Listing, present bool)
}

var listingFields = []listingField{
	{
		name:  "start_date",
		apply: func(p *PatchListingRequest) { p.StartDate = ptr("2030-06-01") },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := originalListing().StartDate
			if present {
				want = d(2030, 6, 1)
			}
			assert.Equal(t, time.Time(want), time.Time(got.StartDate))
		},
	},
	{
		name:  "end_date",
		apply: func(p *PatchListingRequest) { p.EndDate = ptr("2030-09-30") },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := originalListing().EndDate
			if present {
				want = d(2030, 9, 30)
			}
			assert.Equal(t, time.Time(want), time.Time(got.EndDate))
		},
	},
	{
		name:  "tenant_age",
		apply: func(p *PatchListingRequest) { p.TenantAge = Some(30) },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := 25
			if present {
				want = 30
			}
			require.NotNil(t, got.TenantAge)
			assert.Equal(t, want, *got.TenantAge)
		},
	},
	{
		name:  "tenant_gender",
		apply: func(p *PatchListingRequest) { p.TenantGender = Some("male") },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := models.GenderFemale
			if present {
				want = models.GenderMale
			}
			require.NotNil(t, got.TargetGender)
			assert.Equal(t, want, *got.TargetGender)
		},
	},
	{
		name:  "asking_price",
		apply: func(p *PatchListingRequest) { p.AskingPrice = ptr(1650.0) },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := 1400.0
			if present {
				want = 1650
			}
			assert.Equal(t, want, got.AskingPrice)
		},
	},
	{
		name:  "building_type_id",
		apply: func(p *PatchListingRequest) { p.BuildingTypeID = Some(uint(4)) },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := uint(1)
			if present {
				want = 4
			}
			require.NotNil(t, got.BuildingTypeID)
			assert.Equal(t, want, *got.BuildingTypeID)
		},
	},
	{
		name:  "num_bedrooms",
		apply: func(p *PatchListingRequest) { p.NumBedrooms = ptr(3) },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := 2
			if present {
				want = 3
			}
			assert.Equal(t, want, got.NumBedrooms)
		},
	},
	{
		name:  "num_bathrooms",
		apply: func(p *PatchListingRequest) { p.NumBathrooms = ptr(2) },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := 1
			if present {
				want = 2
			}
			assert.Equal(t, want, got.NumBathrooms)
		},
	},
	{
		name:  "pet_friendly",
		apply: func(p *PatchListingRequest) { p.PetFriendly = ptr(true) },
		check: func(t *testing.T, got models.Listing, present bool) {
			assert.Equal(t, present, got.PetFriendly)
		},
	},
	{
		name:  "utilities_incl",
		apply: func(p *PatchListingRequest) { p.UtilitiesIncl = ptr(true) },
		check: func(t *testing.T, got models.Listing, present bool) {
			assert.Equal(t, present, got.UtilitiesIncl)
		},
	},
	{
		name:  "description",
		apply: func(p *PatchListingRequest) { p.Description = ptr("patched") },
		check: func(t *testing.T, got models.Listing, present bool) {
			want := "original"
			if present {
				want = "patched"
			}
			assert.Equal(t, want, got.Description)
		},
	},
}

// Перебираем все 2^n комбинаций переданных/непереданных полей.
func TestApplyListingPatch_AllFieldCombinations(t *testing.T) {
	n := len(listingFields)
	for mask := 0; mask < 1<<n; mask++ {
		var patch PatchListingRequest
		for i, f := range listingFields {
			if mask&(1<<i) != 0 {
				f.apply(&patch)
			}
		}

		got := originalListing()
		require.NoError(t, ApplyListingPatch(&got, &patch), "mask=%b", mask)

		for i, f := range listingFields {
			present := mask&(1<<i) != 0
			t.Run(fmt.Sprintf("mask_%b_%s", mask, f.name), func(t *testing.T) {
				f.check(t, got, present)
			})
		}
	}
}

func TestApplyListingPatch_NullClearsNullableFields(t *testing.T) {
	got := originalListing()
	patch := PatchListingRequest{
		TenantAge:      Null[int](),
		TenantGender:   Null[string](),
		BuildingTypeID: Null[uint](),
	}
	require.NoError(t, ApplyListingPatch(&got, &patch))

	assert.Nil(t, got.TenantAge)
	assert.Nil(t, got.TargetGender)
	assert.Nil(t, got.BuildingTypeID)
}

func TestApplyListingPatch_RejectsInvertedDates(t *testing.T) {
	got := originalListing()
	patch := PatchListingRequest{EndDate: ptr("2030-04-30")}

	err := ApplyListingPatch(&got, &patch)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
	// листинг не изменен частично
	assert.Equal(t, time.Time(d(2030, 8, 31)), time.Time(got.EndDate))
}

func TestApplyListingPatch_RejectsUnknownGender(t *testing.T) {
	got := originalListing()
	patch := PatchListingRequest{TenantGender: Some("robot"), AskingPrice: ptr(1.0)}

	require.Error(t, ApplyListingPatch(&got, &patch))
	assert.Equal(t, 1400.0, got.AskingPrice)
}

func TestPatchListingRequest_JSONPresence(t *testing.T) {
	var p PatchListingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tenant_gender": null, "building_type_id": 3, "asking_price": 1500}`), &p))

	assert.True(t, p.TenantGender.Set)
	assert.True(t, p.TenantGender.Null)
	assert.True(t, p.BuildingTypeID.Set)
	assert.Equal(t, uint(3), p.BuildingTypeID.Value)
	assert.False(t, p.TenantAge.Set)
	assert.False(t, p.Amenities.Set)
	require.NotNil(t, p.AskingPrice)
	assert.Nil(t, p.NumBedrooms)
}

func originalRenter() models.RenterProfile {
	return models.RenterProfile{
		IsActive:         true,
		DesiredStartDate: d(2030, 5, 1),
		DesiredEndDate:   d(2030, 8, 31),
		Age:              24,
		Budget:           1200,
		DesiredBedrooms:  1,
		DesiredBathrooms: 1,
		Bio:              "hi",
	}
}

func TestApplyRenterPatch_PresentAndAbsent(t *testing.T) {
	tests := []struct {
		name  string
		patch PatchRenterRequest
		check func(t *testing.T, r models.RenterProfile)
	}{
		{
			name:  "empty patch keeps everything",
			patch: PatchRenterRequest{},
			check: func(t *testing.T, r models.RenterProfile) {
				assert.Equal(t, originalRenter(), r)
			},
		},
		{
			name:  "budget and pet",
			patch: PatchRenterRequest{Budget: ptr(1500.0), HasPet: ptr(true)},
			check: func(t *testing.T, r models.RenterProfile) {
				assert.Equal(t, 1500.0, r.Budget)
				assert.True(t, r.HasPet)
				assert.Equal(t, 24, r.Age)
			},
		},
		{
			name:  "gender set then bedrooms",
			patch: PatchRenterRequest{Gender: Some("non-binary"), DesiredBedrooms: ptr(2)},
			check: func(t *testing.T, r models.RenterProfile) {
				require.NotNil(t, r.Gender)
				assert.Equal(t, models.GenderNonBinary, *r.Gender)
				assert.Equal(t, 2, r.DesiredBedrooms)
				assert.Equal(t, 1, r.DesiredBathrooms)
			},
		},
		{
			name:  "deactivate",
			patch: PatchRenterRequest{IsActive: ptr(false)},
			check: func(t *testing.T, r models.RenterProfile) {
				assert.False(t, r.IsActive)
			},
		},
		{
			name:  "dates",
			patch: PatchRenterRequest{DesiredStartDate: ptr("2030-06-01"), DesiredEndDate: ptr("2030-07-01")},
			check: func(t *testing.T, r models.RenterProfile) {
				assert.Equal(t, time.Time(d(2030, 6, 1)), r.Start())
				assert.Equal(t, time.Time(d(2030, 7, 1)), r.End())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := originalRenter()
			require.NoError(t, ApplyRenterPatch(&r, &tt.patch))
			tt.check(t, r)
		})
	}
}

func TestApplyRenterPatch_BadDate(t *testing.T) {
	r := originalRenter()
	err := ApplyRenterPatch(&r, &PatchRenterRequest{DesiredStartDate: ptr("01/06/2030")})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}
