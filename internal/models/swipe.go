package models

// RenterSwipe - решение арендатора по листингу. Пара (RenterProfileID, ListingID)
// уникальна, повторный свайп перезаписывает IsRight.
type RenterSwipe struct {
	BaseModel
	RenterProfileID string        `gorm:"type:uuid;not null;uniqueIndex:idx_renter_swipes_pair,priority:1" json:"renter_profile_id"`
	ListingID       string        `gorm:"type:uuid;not null;uniqueIndex:idx_renter_swipes_pair,priority:2;index" json:"listing_id"`
	IsRight         bool          `gorm:"not null" json:"is_right"`
	RenterProfile   RenterProfile `gorm:"foreignKey:RenterProfileID;constraint:OnDelete:CASCADE" json:"-"`
	Listing         Listing       `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
}

// ListingSwipe - решение владельца листинга по профилю арендатора
type ListingSwipe struct {
	BaseModel
	ListingID       string        `gorm:"type:uuid;not null;uniqueIndex:idx_listing_swipes_pair,priority:1" json:"listing_id"`
	RenterProfileID string        `gorm:"type:uuid;not null;uniqueIndex:idx_listing_swipes_pair,priority:2;index" json:"renter_profile_id"`
	IsRight         bool          `gorm:"not null" json:"is_right"`
	Listing         Listing       `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	RenterProfile   RenterProfile `gorm:"foreignKey:RenterProfileID;constraint:OnDelete:CASCADE" json:"-"`
}
