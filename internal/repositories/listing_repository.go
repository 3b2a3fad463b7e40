package repositories

import (
	"time"

	"sublet_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingRepository interface {
	Create(db *gorm.DB, listing *models.Listing) error
	Update(db *gorm.DB, listing *models.Listing) error
	FindByID(db *gorm.DB, id string) (*models.Listing, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Listing, error)
	FindActiveByIDs(db *gorm.DB, ids []string) ([]models.Listing, error)
	SetActive(db *gorm.DB, id string, active bool) error
	ReplaceAmenities(db *gorm.DB, listingID string, amenityIDs []uint) error
	ReplacePhotos(db *gorm.DB, listingID string, photos []models.Photo) error
	// DeactivateExpired выключает активные листинги с end_date < today
	DeactivateExpired(db *gorm.DB, today time.Time) (int64, error)
}

// listingAmenity - строка join-таблицы many2many Listing.Amenities
type listingAmenity struct {
	ListingID string
	AmenityID uint
}

func (listingAmenity) TableName() string { return "listing_amenities" }

type ListingRepositoryImpl struct{}

func NewListingRepository() ListingRepository {
	return &ListingRepositoryImpl{}
}

// Create вставляет только саму строку листинга; амениты и фото пишутся
// через ReplaceAmenities/ReplacePhotos в той же транзакции.
func (r *ListingRepositoryImpl) Create(db *gorm.DB, listing *models.Listing) error {
	return db.Omit(clause.Associations).Create(listing).Error
}

func (r *ListingRepositoryImpl) Update(db *gorm.DB, listing *models.Listing) error {
	return db.Omit(clause.Associations).Save(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Listing, error) {
	var listing models.Listing
	err := withListingAssociations(db).First(&listing, "listings.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) FindByUserID(db *gorm.DB, userID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := withListingAssociations(db).
		Where("listings.user_id = ?", userID).
		Order("listings.created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) FindActiveByIDs(db *gorm.DB, ids []string) ([]models.Listing, error) {
	var listings []models.Listing
	if len(ids) == 0 {
		return listings, nil
	}
	err := db.Preload("Location").
		Where("listings.id IN ? AND listings.is_active = ?", ids, true).
		Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) SetActive(db *gorm.DB, id string, active bool) error {
	res := db.Model(&models.Listing{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) ReplaceAmenities(db *gorm.DB, listingID string, amenityIDs []uint) error {
	if err := db.Where("listing_id = ?", listingID).Delete(&listingAmenity{}).Error; err != nil {
		return err
	}
	if len(amenityIDs) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(amenityIDs))
	rows := make([]listingAmenity, 0, len(amenityIDs))
	for _, id := range amenityIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, listingAmenity{ListingID: listingID, AmenityID: id})
	}
	return db.Create(&rows).Error
}

func (r *ListingRepositoryImpl) ReplacePhotos(db *gorm.DB, listingID string, photos []models.Photo) error {
	if err := db.Where("listing_id = ?", listingID).Delete(&models.Photo{}).Error; err != nil {
		return err
	}
	if len(photos) == 0 {
		return nil
	}
	for i := range photos {
		photos[i].ListingID = listingID
	}
	return db.Create(&photos).Error
}

func (r *ListingRepositoryImpl) DeactivateExpired(db *gorm.DB, today time.Time) (int64, error) {
	res := db.Model(&models.Listing{}).
		Where("is_active = ? AND end_date < CAST(? AS date)", true, sqlDate(today)).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func withListingAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Location").Preload("Amenities").Preload("Photos")
}
