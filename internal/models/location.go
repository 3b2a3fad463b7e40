package models

import (
	"time"

	"sublet_backend/internal/geo"
)

// Location - адрес, распознанный геокодером. PlaceID - внешний идентификатор,
// по нему локации дедуплицируются.
type Location struct {
	BaseModel
	PlaceID   string  `gorm:"uniqueIndex:idx_locations_place_id;size:255;not null" json:"place_id"`
	Address   string  `gorm:"not null" json:"address"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Latitude, Lng: l.Longitude}
}

// ResolvedPlace - результат геокодирования до записи в БД
type ResolvedPlace struct {
	PlaceID   string
	Address   string
	Latitude  float64
	Longitude float64
}

func (p ResolvedPlace) ToLocation() *Location {
	return &Location{
		PlaceID:   p.PlaceID,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

// DateOnly - полночь UTC для календарной даты
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
