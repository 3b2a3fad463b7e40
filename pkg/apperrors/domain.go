package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - сущность не найдена (404)
func ErrNotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - нарушение уникальности (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrStore - сбой хранилища: соединение, транзакция (500)
func ErrStore(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Database operation failed", http.StatusInternalServerError)
}

// ErrAddressResolution - геокодер не смог распознать адрес (422)
func ErrAddressResolution(err error, address string) *AppError {
	return Wrap(err, CodeExternalServiceError, "geocoding", "Could not resolve address", http.StatusUnprocessableEntity).
		WithDetails(map[string]string{"address": address})
}

// ErrExternalService - внешний сервис недоступен или ответил ошибкой (502)
func ErrExternalService(err error, domain string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, "External service error", http.StatusBadGateway)
}

// ErrExternalUnavailable - circuit breaker открыт (503)
func ErrExternalUnavailable(err error, domain string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, "External service temporarily unavailable", http.StatusServiceUnavailable)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

var ErrEmailAlreadyExists = New(
	CodeConflict,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"You do not own this resource",
	http.StatusForbidden,
)

var ErrRenterProfileNotFound = New(
	CodeNotFound,
	"renter",
	"Renter profile not found",
	http.StatusNotFound,
)

var ErrListingNotFound = New(
	CodeNotFound,
	"listing",
	"Listing not found",
	http.StatusNotFound,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrRenterProfileExists = New(
	CodeConflict,
	"renter",
	"User already has a renter profile",
	http.StatusConflict,
)
