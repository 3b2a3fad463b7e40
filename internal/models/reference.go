package models

// Amenity и BuildingType - общие справочники, заполняются сидом
type Amenity struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex:idx_amenities_name;size:100;not null" json:"name"`
}

type BuildingType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex:idx_building_types_name;size:100;not null" json:"name"`
}
