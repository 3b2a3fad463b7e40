package models

import (
	"time"

	"gorm.io/datatypes"
)

// RenterProfile - профиль арендатора, один на пользователя
type RenterProfile struct {
	BaseModel
	UserID           string         `gorm:"type:uuid;not null;uniqueIndex:idx_renter_profiles_user_id" json:"user_id"`
	LocationID       string         `gorm:"type:uuid;not null;index" json:"location_id"`
	Location         Location       `gorm:"constraint:OnDelete:RESTRICT" json:"location"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	DesiredStartDate datatypes.Date `gorm:"not null" json:"desired_start_date"`
	DesiredEndDate   datatypes.Date `gorm:"not null" json:"desired_end_date"`
	Age              int            `gorm:"not null" json:"age"`
	Gender           *Gender        `gorm:"type:varchar(32)" json:"gender"`
	Budget           float64        `gorm:"not null" json:"budget"`
	DesiredBedrooms  int            `gorm:"not null;index" json:"desired_num_bedrooms"`
	DesiredBathrooms int            `gorm:"not null" json:"desired_num_bathrooms"`
	HasPet           bool           `gorm:"not null;default:false" json:"has_pet"`
	BuildingTypeID   *uint          `json:"building_type_id"`
	BuildingType     *BuildingType  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Bio              string         `gorm:"type:text" json:"bio,omitempty"`
}

func (r *RenterProfile) Start() time.Time { return time.Time(r.DesiredStartDate) }
func (r *RenterProfile) End() time.Time   { return time.Time(r.DesiredEndDate) }
