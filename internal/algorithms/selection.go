package algorithms

import (
	"time"

	"sublet_backend/internal/models"
)

const DefaultDateSlackDays = 5

// SelectionPolicy - жесткие фильтры до скоринга. Хранилище применяет те же
// правила в SQL через ListingBounds/RenterBounds.
type SelectionPolicy struct {
	DateSlackDays int
}

func DefaultSelectionPolicy() SelectionPolicy {
	return SelectionPolicy{DateSlackDays: DefaultDateSlackDays}
}

// ListingBounds - ограничения на даты листинга для данного арендатора:
// listing.start <= LatestStart и listing.end >= EarliestEnd.
type ListingBounds struct {
	LatestStart time.Time
	EarliestEnd time.Time
}

// RenterBounds - ограничения на даты арендатора для данного листинга:
// renter.start >= EarliestStart и renter.end <= LatestEnd.
type RenterBounds struct {
	EarliestStart time.Time
	LatestEnd     time.Time
}

func (p SelectionPolicy) ListingBounds(r *models.RenterProfile) ListingBounds {
	return ListingBounds{
		LatestStart: r.Start().AddDate(0, 0, p.DateSlackDays),
		EarliestEnd: r.End().AddDate(0, 0, -p.DateSlackDays),
	}
}

func (p SelectionPolicy) RenterBounds(l *models.Listing) RenterBounds {
	return RenterBounds{
		EarliestStart: l.Start().AddDate(0, 0, -p.DateSlackDays),
		LatestEnd:     l.End().AddDate(0, 0, p.DateSlackDays),
	}
}

// AdmitsListing - может ли листинг l быть предложен арендатору r.
// Исключение уже принятых решений проверяет хранилище.
func (p SelectionPolicy) AdmitsListing(l *models.Listing, r *models.RenterProfile) bool {
	return l.IsActive && p.compatible(l, r)
}

// AdmitsRenter - может ли арендатор r быть предложен листингу l.
func (p SelectionPolicy) AdmitsRenter(r *models.RenterProfile, l *models.Listing) bool {
	return r.IsActive && p.compatible(l, r)
}

func (p SelectionPolicy) compatible(l *models.Listing, r *models.RenterProfile) bool {
	if l.UserID == r.UserID {
		return false
	}
	if l.NumBedrooms != r.DesiredBedrooms {
		return false
	}
	bounds := p.RenterBounds(l)
	if r.Start().Before(bounds.EarliestStart) || r.End().After(bounds.LatestEnd) {
		return false
	}
	return !r.HasPet || l.PetFriendly
}
