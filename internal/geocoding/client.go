// Package geocoding - клиент Google Geocoding и Places Autocomplete.
// Вызовы идут через rate limiter и circuit breaker; ответы провайдера
// со статусом ZERO_RESULTS/INVALID_REQUEST считаются ошибкой клиента и
// breaker не размыкают.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"sublet_backend/internal/logger"
	"sublet_backend/internal/metrics"
	"sublet_backend/internal/models"
)

const (
	statusOK           = "OK"
	statusZeroResults  = "ZERO_RESULTS"
	statusInvalidInput = "INVALID_REQUEST"

	maxResponseBytes = 1 << 20
)

// AddressResolutionError - провайдер не смог распознать адрес
type AddressResolutionError struct {
	Address string
	Status  string
}

func (e *AddressResolutionError) Error() string {
	return fmt.Sprintf("address %q not resolved: %s", e.Address, e.Status)
}

// ProviderError - сбой на стороне провайдера (квота, ключ, 5xx)
type ProviderError struct {
	Status     string
	HTTPStatus int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("geocoding provider returned HTTP %d", e.HTTPStatus)
	}
	if e.Message != "" {
		return fmt.Sprintf("geocoding provider status %s: %s", e.Status, e.Message)
	}
	return "geocoding provider status " + e.Status
}

// IsBreakerOpen - вызов не выполнялся, т.к. breaker разомкнут
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

type Config struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	RatePerSecond    float64
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
	CountryFilter    string
}

type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg Config) *Client {
	settings := gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			var resErr *AddressResolutionError
			return err == nil || errors.As(err, &resErr) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.GeocoderBreakerState.Set(float64(to))
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID          string `json:"place_id"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type term struct {
	Value string `json:"value"`
}

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
		Terms       []term `json:"terms"`
	} `json:"predictions"`
}

// Geocode распознает адрес. Вызов только читает данные провайдера и может
// повторяться без побочных эффектов.
func (c *Client) Geocode(ctx context.Context, address string) (*models.ResolvedPlace, error) {
	start := time.Now()
	params := url.Values{"address": {address}}

	body, err := c.call(ctx, "/geocode/json", params, func(status string) error {
		switch status {
		case statusOK:
			return nil
		case statusZeroResults, statusInvalidInput:
			return &AddressResolutionError{Address: address, Status: status}
		}
		return nil
	})
	logger.GeocodeLog("geocode", time.Since(start), err)
	if err != nil {
		recordOutcome("geocode", err)
		return nil, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		recordOutcome("geocode", err)
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(resp.Results) == 0 {
		err := &AddressResolutionError{Address: address, Status: statusZeroResults}
		recordOutcome("geocode", err)
		return nil, err
	}

	first := resp.Results[0]
	recordOutcome("geocode", nil)
	return &models.ResolvedPlace{
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

// Autocomplete возвращает подсказки адресов, оставляя только те, у которых
// один из terms совпадает с CountryFilter (без учета регистра).
func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	start := time.Now()
	params := url.Values{"input": {input}}

	body, err := c.call(ctx, "/place/autocomplete/json", params, func(status string) error {
		if status == statusInvalidInput {
			return &AddressResolutionError{Address: input, Status: status}
		}
		return nil
	})
	logger.GeocodeLog("autocomplete", time.Since(start), err)
	if err != nil {
		recordOutcome("autocomplete", err)
		return nil, err
	}

	var resp autocompleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		recordOutcome("autocomplete", err)
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	predictions := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		if !c.inCountry(p.Terms) {
			continue
		}
		predictions = append(predictions, Prediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	recordOutcome("autocomplete", nil)
	return predictions, nil
}

func (c *Client) inCountry(terms []term) bool {
	if c.cfg.CountryFilter == "" {
		return true
	}
	for _, t := range terms {
		if strings.EqualFold(t.Value, c.cfg.CountryFilter) {
			return true
		}
	}
	return false
}

// call выполняет GET через breaker. classify разбирает поле status ответа:
// для известных клиентских статусов возвращает ошибку, остальные не-OK и не
// ZERO_RESULTS статусы считаются сбоем провайдера.
func (c *Client) call(ctx context.Context, path string, params url.Values, classify func(status string) error) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("key", c.cfg.APIKey)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + params.Encode()

	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, &ProviderError{HTTPStatus: res.StatusCode}
		}
		body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}

		var envelope struct {
			Status       string `json:"status"`
			ErrorMessage string `json:"error_message"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("decode provider envelope: %w", err)
		}
		if err := classify(envelope.Status); err != nil {
			return nil, err
		}
		if envelope.Status != statusOK && envelope.Status != statusZeroResults {
			return nil, &ProviderError{Status: envelope.Status, Message: envelope.ErrorMessage}
		}
		return body, nil
	})
}

func recordOutcome(operation string, err error) {
	var resErr *AddressResolutionError
	switch {
	case err == nil:
		metrics.RecordGeocoderCall(operation, "ok")
	case errors.As(err, &resErr):
		metrics.RecordGeocoderCall(operation, "unresolved")
	case IsBreakerOpen(err):
		metrics.RecordGeocoderCall(operation, "breaker_open")
	default:
		metrics.RecordGeocoderCall(operation, "error")
	}
}
