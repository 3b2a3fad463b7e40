package services

import (
	"context"
	"errors"

	"sublet_backend/internal/geocoding"
	"sublet_backend/internal/models"
	"sublet_backend/pkg/apperrors"
)

// Geocoder превращает адрес в место с place_id и координатами.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.ResolvedPlace, error)
}

// PlaceSuggester - подсказки адресов для формы ввода.
type PlaceSuggester interface {
	Autocomplete(ctx context.Context, input string) ([]geocoding.Prediction, error)
}

// geocodeError переводит ошибку геокодера в AppError:
// нераспознанный адрес - 422, разомкнутый breaker - 503, остальное - 502.
func geocodeError(err error, address string) error {
	var resErr *geocoding.AddressResolutionError
	switch {
	case errors.As(err, &resErr):
		return apperrors.ErrAddressResolution(err, address)
	case geocoding.IsBreakerOpen(err):
		return apperrors.ErrExternalUnavailable(err, "geocoding")
	default:
		return apperrors.ErrExternalService(err, "geocoding")
	}
}
