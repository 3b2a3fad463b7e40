package models

// User владеет максимум одним RenterProfile и любым количеством Listing.
// Удаление пользователя каскадом удаляет их вместе со свайпами.
type User struct {
	BaseModel
	FirstName       string `gorm:"size:100;not null" json:"first_name"`
	LastName        string `gorm:"size:100;not null" json:"last_name"`
	Email           string `gorm:"uniqueIndex:idx_users_email;size:255;not null" json:"email"`
	Phone           string `gorm:"size:32" json:"phone,omitempty"`
	PasswordHash    string `gorm:"not null" json:"-"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`

	RenterProfile *RenterProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Listings      []Listing      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
