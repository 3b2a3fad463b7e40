package repositories

import (
	"sublet_backend/internal/algorithms"
	"sublet_backend/internal/models"

	"gorm.io/gorm"
)

// CandidateRepository выбирает контрагентов, прошедших жесткие фильтры
// SelectionPolicy. Пары, по которым уже есть решение в любом направлении,
// исключаются. Пустой результат - не ошибка.
type CandidateRepository interface {
	ListingCandidates(db *gorm.DB, renter *models.RenterProfile, policy algorithms.SelectionPolicy, limit int) ([]models.Listing, error)
	RenterCandidates(db *gorm.DB, listing *models.Listing, policy algorithms.SelectionPolicy, limit int) ([]models.RenterProfile, error)
}

type CandidateRepositoryImpl struct{}

func NewCandidateRepository() CandidateRepository {
	return &CandidateRepositoryImpl{}
}

func (r *CandidateRepositoryImpl) ListingCandidates(db *gorm.DB, renter *models.RenterProfile, policy algorithms.SelectionPolicy, limit int) ([]models.Listing, error) {
	bounds := policy.ListingBounds(renter)

	q := db.Preload("Location").
		Where("listings.is_active = ?", true).
		Where("listings.num_bedrooms = ?", renter.DesiredBedrooms).
		Where("listings.start_date <= CAST(? AS date)", sqlDate(bounds.LatestStart)).
		Where("listings.end_date >= CAST(? AS date)", sqlDate(bounds.EarliestEnd)).
		Where("listings.user_id <> ?", renter.UserID).
		Where("NOT EXISTS (SELECT 1 FROM renter_swipes rs WHERE rs.listing_id = listings.id AND rs.renter_profile_id = ?)", renter.ID).
		Where("NOT EXISTS (SELECT 1 FROM listing_swipes ls WHERE ls.listing_id = listings.id AND ls.renter_profile_id = ?)", renter.ID)

	if renter.HasPet {
		q = q.Where("listings.pet_friendly = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var listings []models.Listing
	err := q.Order("listings.created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *CandidateRepositoryImpl) RenterCandidates(db *gorm.DB, listing *models.Listing, policy algorithms.SelectionPolicy, limit int) ([]models.RenterProfile, error) {
	bounds := policy.RenterBounds(listing)

	q := db.Preload("Location").
		Where("renter_profiles.is_active = ?", true).
		Where("renter_profiles.desired_bedrooms = ?", listing.NumBedrooms).
		Where("renter_profiles.desired_start_date >= CAST(? AS date)", sqlDate(bounds.EarliestStart)).
		Where("renter_profiles.desired_end_date <= CAST(? AS date)", sqlDate(bounds.LatestEnd)).
		Where("renter_profiles.user_id <> ?", listing.UserID).
		Where("NOT EXISTS (SELECT 1 FROM renter_swipes rs WHERE rs.renter_profile_id = renter_profiles.id AND rs.listing_id = ?)", listing.ID).
		Where("NOT EXISTS (SELECT 1 FROM listing_swipes ls WHERE ls.renter_profile_id = renter_profiles.id AND ls.listing_id = ?)", listing.ID)

	if !listing.PetFriendly {
		q = q.Where("renter_profiles.has_pet = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var renters []models.RenterProfile
	err := q.Order("renter_profiles.created_at DESC").Find(&renters).Error
	return renters, err
}
