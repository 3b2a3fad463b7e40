package dto

import (
	"time"

	"sublet_backend/internal/models"
)

type PhotoInput struct {
	URL   string `json:"url" validate:"required,url"`
	Label string `json:"label" validate:"omitempty,max=100"`
}

type CreateListingRequest struct {
	Address        string       `json:"address" validate:"required,max=500"`
	StartDate      string       `json:"start_date" validate:"required,date-ymd"`
	EndDate        string       `json:"end_date" validate:"required,date-ymd"`
	TenantAge      *int         `json:"tenant_age" validate:"omitempty,min=16,max=120"`
	TenantGender   *string      `json:"tenant_gender" validate:"omitempty,is-gender"`
	AskingPrice    float64      `json:"asking_price" validate:"required,gt=0"`
	BuildingTypeID *uint        `json:"building_type_id"`
	NumBedrooms    int          `json:"num_bedrooms" validate:"min=0,max=20"`
	NumBathrooms   int          `json:"num_bathrooms" validate:"min=0,max=20"`
	PetFriendly    bool         `json:"pet_friendly"`
	UtilitiesIncl  bool         `json:"utilities_incl"`
	Description    string       `json:"description" validate:"omitempty,max=5000"`
	Amenities      []uint       `json:"amenities"`
	Photos         []PhotoInput `json:"photos" validate:"omitempty,dive"`
}

// PatchListingRequest - частичное обновление. Указатель nil или Optional
// без Set означает "не менять".
type PatchListingRequest struct {
	Address        *string                `json:"address" validate:"omitempty,min=1,max=500"`
	StartDate      *string                `json:"start_date" validate:"omitempty,date-ymd"`
	EndDate        *string                `json:"end_date" validate:"omitempty,date-ymd"`
	TenantAge      Optional[int]          `json:"tenant_age"`
	TenantGender   Optional[string]       `json:"tenant_gender"`
	AskingPrice    *float64               `json:"asking_price" validate:"omitempty,gt=0"`
	BuildingTypeID Optional[uint]         `json:"building_type_id"`
	NumBedrooms    *int                   `json:"num_bedrooms" validate:"omitempty,min=0,max=20"`
	NumBathrooms   *int                   `json:"num_bathrooms" validate:"omitempty,min=0,max=20"`
	PetFriendly    *bool                  `json:"pet_friendly"`
	UtilitiesIncl  *bool                  `json:"utilities_incl"`
	Description    *string                `json:"description" validate:"omitempty,max=5000"`
	Amenities      Optional[[]uint]       `json:"amenities"`
	Photos         Optional[[]PhotoInput] `json:"photos"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type PhotoResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

type ListingResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	IsActive       bool             `json:"is_active"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	TenantAge      *int             `json:"tenant_age"`
	TenantGender   *models.Gender   `json:"tenant_gender"`
	AskingPrice    float64          `json:"asking_price"`
	BuildingTypeID *uint            `json:"building_type_id"`
	NumBedrooms    int              `json:"num_bedrooms"`
	NumBathrooms   int              `json:"num_bathrooms"`
	PetFriendly    bool             `json:"pet_friendly"`
	UtilitiesIncl  bool             `json:"utilities_incl"`
	Description    string           `json:"description,omitempty"`
	LocationID     string           `json:"location_id"`
	Address        string           `json:"address"`
	Latitude       float64          `json:"latitude"`
	Longitude      float64          `json:"longitude"`
	Amenities      []models.Amenity `json:"amenities,omitempty"`
	Photos         []PhotoResponse  `json:"photos,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func NewListingResponse(l *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:             l.ID,
		UserID:         l.UserID,
		IsActive:       l.IsActive,
		StartDate:      FormatDate(l.StartDate),
		EndDate:        FormatDate(l.EndDate),
		TenantAge:      l.TenantAge,
		TenantGender:   l.TargetGender,
		AskingPrice:    l.AskingPrice,
		BuildingTypeID: l.BuildingTypeID,
		NumBedrooms:    l.NumBedrooms,
		NumBathrooms:   l.NumBathrooms,
		PetFriendly:    l.PetFriendly,
		UtilitiesIncl:  l.UtilitiesIncl,
		Description:    l.Description,
		LocationID:     l.LocationID,
		Address:        l.Location.Address,
		Latitude:       l.Location.Latitude,
		Longitude:      l.Location.Longitude,
		Amenities:      l.Amenities,
		CreatedAt:      l.CreatedAt,
	}
	for _, p := range l.Photos {
		resp.Photos = append(resp.Photos, PhotoResponse{ID: p.ID, URL: p.URL, Label: p.Label})
	}
	return resp
}

func NewListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, NewListingResponse(&listings[i]))
	}
	return out
}

func PhotosFromInput(in []PhotoInput) []models.Photo {
	photos := make([]models.Photo, 0, len(in))
	for _, p := range in {
		photos = append(photos, models.Photo{URL: p.URL, Label: p.Label})
	}
	return photos
}
