package models

import (
	"time"

	"gorm.io/datatypes"
)

type Listing struct {
	BaseModel
	UserID         string         `gorm:"type:uuid;not null;index" json:"user_id"`
	LocationID     string         `gorm:"type:uuid;not null;index" json:"location_id"`
	Location       Location       `gorm:"constraint:OnDelete:RESTRICT" json:"location"`
	IsActive       bool           `gorm:"not null;default:true;index" json:"is_active"`
	StartDate      datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate        datatypes.Date `gorm:"not null" json:"end_date"`
	TenantAge      *int           `json:"tenant_age,omitempty"`
	TargetGender   *Gender        `gorm:"column:tenant_gender;type:varchar(32)" json:"tenant_gender"`
	AskingPrice    float64        `gorm:"not null" json:"asking_price"`
	BuildingTypeID *uint          `json:"building_type_id"`
	BuildingType   *BuildingType  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	NumBedrooms    int            `gorm:"not null;index" json:"num_bedrooms"`
	NumBathrooms   int            `gorm:"not null" json:"num_bathrooms"`
	PetFriendly    bool           `gorm:"not null;default:false" json:"pet_friendly"`
	UtilitiesIncl  bool           `gorm:"not null;default:false" json:"utilities_incl"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`

	Amenities []Amenity `gorm:"many2many:listing_amenities;constraint:OnDelete:CASCADE" json:"amenities"`
	Photos    []Photo   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"photos"`
}

func (l *Listing) Start() time.Time { return time.Time(l.StartDate) }
func (l *Listing) End() time.Time   { return time.Time(l.EndDate) }

type Photo struct {
	BaseModel
	ListingID string `gorm:"type:uuid;not null;index" json:"listing_id"`
	URL       string `gorm:"not null" json:"url"`
	Label     string `json:"label,omitempty"`
}
