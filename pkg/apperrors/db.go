package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintMessages - человекочитаемые причины по имени ограничения.
var constraintMessages = map[string]string{
	"idx_users_email":                  "Email already registered",
	"idx_renter_profiles_user_id":      "User already has a renter profile",
	"idx_renter_swipes_pair":           "Renter already swiped on this listing",
	"idx_listing_swipes_pair":          "Listing already swiped on this renter",
	"idx_locations_place_id":           "Location already exists",
	"fk_renter_swipes_listing":         "Listing does not exist",
	"fk_renter_swipes_renter_profile":  "Renter profile does not exist",
	"fk_listing_swipes_listing":        "Listing does not exist",
	"fk_listing_swipes_renter_profile": "Renter profile does not exist",
	"fk_listings_building_type":        "Building type does not exist",
	"fk_renter_profiles_building_type": "Building type does not exist",
	"fk_listing_amenities_amenity":     "Amenity does not exist",
}

// ConstraintMessage строит сообщение по имени ограничения. Для неизвестных
// имен вида idx_<table>_<column> возвращает "<table> with this <column> already exists".
func ConstraintMessage(constraint string) string {
	if msg, ok := constraintMessages[constraint]; ok {
		return msg
	}
	name := strings.TrimPrefix(strings.TrimPrefix(constraint, "idx_"), "fk_")
	if name == "" {
		return "Constraint violation"
	}
	return "Constraint violated: " + strings.ReplaceAll(name, "_", " ")
}

// FromDB переводит ошибку gorm/pgx в таксономию AppError.
// nil -> nil, уже AppError возвращается как есть.
func FromDB(err error, domain string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound(domain, domain+" not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict(err, domain, ConstraintMessage(pgErr.ConstraintName))
		case pgForeignKeyViolation:
			return Wrap(err, CodeNotFound, domain, ConstraintMessage(pgErr.ConstraintName), http.StatusNotFound)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict(err, domain, "Resource already exists")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Wrap(err, CodeNotFound, domain, "Referenced resource does not exist", http.StatusNotFound)
	}
	return ErrStore(err, domain)
}
