package dto

import (
	"time"

	"sublet_backend/internal/models"
)

type CreateRenterRequest struct {
	Address          string  `json:"address" validate:"required,max=500"`
	DesiredStartDate string  `json:"desired_start_date" validate:"required,date-ymd"`
	DesiredEndDate   string  `json:"desired_end_date" validate:"required,date-ymd"`
	Age              int     `json:"age" validate:"required,min=16,max=120"`
	Gender           *string `json:"gender" validate:"omitempty,is-gender"`
	Budget           float64 `json:"budget" validate:"required,gt=0"`
	DesiredBedrooms  int     `json:"desired_num_bedrooms" validate:"min=0,max=20"`
	DesiredBathrooms int     `json:"desired_num_bathrooms" validate:"min=0,max=20"`
	HasPet           bool    `json:"has_pet"`
	BuildingTypeID   *uint   `json:"building_type_id"`
	Bio              string  `json:"bio" validate:"omitempty,max=5000"`
}

type PatchRenterRequest struct {
	Address          *string          `json:"address" validate:"omitempty,min=1,max=500"`
	DesiredStartDate *string          `json:"desired_start_date" validate:"omitempty,date-ymd"`
	DesiredEndDate   *string          `json:"desired_end_date" validate:"omitempty,date-ymd"`
	Age              *int             `json:"age" validate:"omitempty,min=16,max=120"`
	Gender           Optional[string] `json:"gender"`
	Budget           *float64         `json:"budget" validate:"omitempty,gt=0"`
	DesiredBedrooms  *int             `json:"desired_num_bedrooms" validate:"omitempty,min=0,max=20"`
	DesiredBathrooms *int             `json:"desired_num_bathrooms" validate:"omitempty,min=0,max=20"`
	HasPet           *bool            `json:"has_pet"`
	BuildingTypeID   Optional[uint]   `json:"building_type_id"`
	Bio              *string          `json:"bio" validate:"omitempty,max=5000"`
	IsActive         *bool            `json:"is_active"`
}

type RenterResponse struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	IsActive         bool           `json:"is_active"`
	DesiredStartDate string         `json:"desired_start_date"`
	DesiredEndDate   string         `json:"desired_end_date"`
	Age              int            `json:"age"`
	Gender           *models.Gender `json:"gender"`
	Budget           float64        `json:"budget"`
	DesiredBedrooms  int            `json:"desired_num_bedrooms"`
	DesiredBathrooms int            `json:"desired_num_bathrooms"`
	HasPet           bool           `json:"has_pet"`
	BuildingTypeID   *uint          `json:"building_type_id"`
	Bio              string         `json:"bio,omitempty"`
	LocationID       string         `json:"location_id"`
	Address          string         `json:"address"`
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	CreatedAt        time.Time      `json:"created_at"`
}

func NewRenterResponse(r *models.RenterProfile) RenterResponse {
	return RenterResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		IsActive:         r.IsActive,
		DesiredStartDate: FormatDate(r.DesiredStartDate),
		DesiredEndDate:   FormatDate(r.DesiredEndDate),
		Age:              r.Age,
		Gender:           r.Gender,
		Budget:           r.Budget,
		DesiredBedrooms:  r.DesiredBedrooms,
		DesiredBathrooms: r.DesiredBathrooms,
		HasPet:           r.HasPet,
		BuildingTypeID:   r.BuildingTypeID,
		Bio:              r.Bio,
		LocationID:       r.LocationID,
		Address:          r.Location.Address,
		Latitude:         r.Location.Latitude,
		Longitude:        r.Location.Longitude,
		CreatedAt:        r.CreatedAt,
	}
}

func NewRenterResponses(renters []models.RenterProfile) []RenterResponse {
	out := make([]RenterResponse, 0, len(renters))
	for i := range renters {
		out = append(out, NewRenterResponse(&renters[i]))
	}
	return out
}
