package repositories

import (
	"sublet_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	// FindOrCreate идемпотентна по PlaceID: конкурентные вызовы сходятся к одной строке.
	FindOrCreate(db *gorm.DB, place models.ResolvedPlace) (*models.Location, error)
	FindByPlaceID(db *gorm.DB, placeID string) (*models.Location, error)
}

type LocationRepositoryImpl struct{}

func NewLocationRepository() LocationRepository {
	return &LocationRepositoryImpl{}
}

func (r *LocationRepositoryImpl) FindOrCreate(db *gorm.DB, place models.ResolvedPlace) (*models.Location, error) {
	loc := place.ToLocation()
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoNothing: true,
	}).Create(loc)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return loc, nil
	}
	// строка уже есть (или ее только что вставил параллельный запрос)
	return r.FindByPlaceID(db, place.PlaceID)
}

func (r *LocationRepositoryImpl) FindByPlaceID(db *gorm.DB, placeID string) (*models.Location, error) {
	var loc models.Location
	if err := db.First(&loc, "place_id = ?", placeID).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}
