package repositories

import (
	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeRepository - журнал направленных решений. Два отношения хранятся
// раздельно, взаимный матч вычисляется при чтении.
type SwipeRepository interface {
	// UpsertRenterSwipe вставляет или перезаписывает решение арендатора и
	// возвращает id строки. Конкурентные вызовы по одной паре сериализует Postgres.
	UpsertRenterSwipe(db *gorm.DB, renterProfileID, listingID string, isRight bool) (string, error)
	UpsertListingSwipe(db *gorm.DB, listingID, renterProfileID string, isRight bool) (string, error)
	FindRenterSwipe(db *gorm.DB, renterProfileID, listingID string) (*models.RenterSwipe, error)
	FindListingSwipe(db *gorm.DB, listingID, renterProfileID string) (*models.ListingSwipe, error)

	IsMutual(db *gorm.DB, renterProfileID, listingID string) (bool, error)
	MutualListingsForRenter(db *gorm.DB, renterProfileID string) ([]models.Listing, error)
	MutualRentersForListing(db *gorm.DB, listingID string) ([]models.RenterProfile, error)

	// LikeGraph возвращает лайки арендатора и лайки всех арендаторов, у которых
	// есть хотя бы один общий с ним лайк. Не больше scanLimit строк, лайки самого
	// арендатора идут первыми.
	LikeGraph(db *gorm.DB, renterProfileID string, scanLimit int) ([]algorithms.Like, error)
}

type SwipeRepositoryImpl struct{}

func NewSwipeRepository() SwipeRepository {
	return &SwipeRepositoryImpl{}
}

func (r *SwipeRepositoryImpl) UpsertRenterSwipe(db *gorm.DB, renterProfileID, listingID string, isRight bool) (string, error) {
	swipe := models.RenterSwipe{
		RenterProfileID: renterProfileID,
		ListingID:       listingID,
		IsRight:         isRight,
	}
	err := db.Omit(clause.Associations).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "renter_profile_id"}, {Name: "listing_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"is_right", "updated_at"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(&swipe).Error
	if err != nil {
		return "", err
	}
	return swipe.ID, nil
}

func (r *SwipeRepositoryImpl) UpsertListingSwipe(db *gorm.DB, listingID, renterProfileID string, isRight bool) (string, error) {
	swipe := models.ListingSwipe{
		ListingID:       listingID,
		RenterProfileID: renterProfileID,
		IsRight:         isRight,
	}
	err := db.Omit(clause.Associations).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "listing_id"}, {Name: "renter_profile_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"is_right", "updated_at"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(&swipe).Error
	if err != nil {
		return "", err
	}
	return swipe.ID, nil
}

func (r *SwipeRepositoryImpl) FindRenterSwipe(db *gorm.DB, renterProfileID, listingID string) (*models.RenterSwipe, error) {
	var swipe models.RenterSwipe
	err := db.Where("renter_profile_id = ? AND listing_id = ?", renterProfileID, listingID).First(&swipe).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (r *SwipeRepositoryImpl) FindListingSwipe(db *gorm.DB, listingID, renterProfileID string) (*models.ListingSwipe, error) {
	var swipe models.ListingSwipe
	err := db.Where("listing_id = ? AND renter_profile_id = ?", listingID, renterProfileID).First(&swipe).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (r *SwipeRepositoryImpl) IsMutual(db *gorm.DB, renterProfileID, listingID string) (bool, error) {
	var mutual bool
	err := db.Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM renter_swipes rs
			JOIN listing_swipes ls
			  ON ls.listing_id = rs.listing_id
			 AND ls.renter_profile_id = rs.renter_profile_id
			WHERE rs.renter_profile_id = ?
			  AND rs.listing_id = ?
			  AND rs.is_right
			  AND ls.is_right
		)`, renterProfileID, listingID).Scan(&mutual).Error
	return mutual, err
}

func (r *SwipeRepositoryImpl) MutualListingsForRenter(db *gorm.DB, renterProfileID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.Select("listings.*").
		Preload("Location").Preload("Photos").
		Joins("JOIN renter_swipes rs ON rs.listing_id = listings.id AND rs.renter_profile_id = ? AND rs.is_right", renterProfileID).
		Joins("JOIN listing_swipes ls ON ls.listing_id = listings.id AND ls.renter_profile_id = ? AND ls.is_right", renterProfileID).
		Order("GREATEST(rs.updated_at, ls.updated_at) DESC").
		Find(&listings).Error
	return listings, err
}

func (r *SwipeRepositoryImpl) MutualRentersForListing(db *gorm.DB, listingID string) ([]models.RenterProfile, error) {
	var renters []models.RenterProfile
	err := db.Select("renter_profiles.*").
		Preload("Location").
		Joins("JOIN renter_swipes rs ON rs.renter_profile_id = renter_profiles.id AND rs.listing_id = ? AND rs.is_right", listingID).
		Joins("JOIN listing_swipes ls ON ls.renter_profile_id = renter_profiles.id AND ls.listing_id = ? AND ls.is_right", listingID).
		Order("GREATEST(rs.updated_at, ls.updated_at) DESC").
		Find(&renters).Error
	return renters, err
}

func (r *SwipeRepositoryImpl) LikeGraph(db *gorm.DB, renterProfileID string, scanLimit int) ([]algorithms.Like, error) {
	var likes []algorithms.Like
	err := db.Raw(`
		SELECT rs.renter_profile_id, rs.listing_id
		FROM renter_swipes rs
		WHERE rs.is_right
		  AND (
		    rs.renter_profile_id = ?
		    OR rs.renter_profile_id IN (
		      SELECT DISTINCT other.renter_profile_id
		      FROM renter_swipes mine
		      JOIN renter_swipes other
		        ON other.listing_id = mine.listing_id
		       AND other.renter_profile_id <> mine.renter_profile_id
		      WHERE mine.renter_profile_id = ?
		        AND mine.is_right
		        AND other.is_right
		    )
		  )
		ORDER BY (rs.renter_profile_id = ?) DESC, rs.renter_profile_id, rs.listing_id
		LIMIT ?`, renterProfileID, renterProfileID, renterProfileID, scanLimit).
		Scan(&likes).Error
	return likes, err
}
