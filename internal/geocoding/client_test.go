package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:           "test-key",
		BaseURL:          srv.URL,
		Timeout:          2 * time.Second,
		RatePerSecond:    1000,
		Burst:            100,
		FailureThreshold: 3,
		OpenTimeout:      time.Minute,
		CountryFilter:    "canada",
	})
}

func TestGeocode_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "1 Yonge St, Toronto", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"place_id": "ChIJ-yonge",
				"formatted_address": "1 Yonge St, Toronto, ON M5E 1W7, Canada",
				"geometry": {"location": {"lat": 43.6426, "lng": -79.3755}}
			}]
		}`))
	})

	place, err := c.Geocode(context.Background(), "1 Yonge St, Toronto")
	require.NoError(t, err)
	assert.Equal(t, "ChIJ-yonge", place.PlaceID)
	assert.Equal(t, "1 Yonge St, Toronto, ON M5E 1W7, Canada", place.Address)
	assert.InDelta(t, 43.6426, place.Latitude, 1e-9)
	assert.InDelta(t, -79.3755, place.Longitude, 1e-9)
}

func TestGeocode_ZeroResultsIsAddressResolutionError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := c.Geocode(context.Background(), "nowhere")
	var resErr *AddressResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "ZERO_RESULTS", resErr.Status)
}

func TestGeocode_ProviderStatusIsProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	})

	_, err := c.Geocode(context.Background(), "1 Yonge St")
	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "REQUEST_DENIED", provErr.Status)
}

func TestGeocode_BreakerOpensOnProviderFailures(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 3; i++ {
		_, err := c.Geocode(context.Background(), "addr")
		require.Error(t, err)
		assert.False(t, IsBreakerOpen(err))
	}

	_, err := c.Geocode(context.Background(), "addr")
	assert.True(t, IsBreakerOpen(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGeocode_UnresolvedAddressesDoNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	for i := 0; i < 10; i++ {
		_, err := c.Geocode(context.Background(), "nowhere")
		var resErr *AddressResolutionError
		require.True(t, errors.As(err, &resErr), "call %d", i)
	}
}

func TestAutocomplete_FiltersByCountry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/autocomplete/json", r.URL.Path)
		assert.Equal(t, "123 Main", r.URL.Query().Get("input"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"predictions": [
				{"place_id": "ca", "description": "123 Main St, Vancouver, BC, Canada",
				 "terms": [{"value": "123 Main St"}, {"value": "Vancouver"}, {"value": "BC"}, {"value": "Canada"}]},
				{"place_id": "us", "description": "123 Main St, Seattle, WA, USA",
				 "terms": [{"value": "123 Main St"}, {"value": "Seattle"}, {"value": "WA"}, {"value": "USA"}]}
			]
		}`))
	})

	predictions, err := c.Autocomplete(context.Background(), "123 Main")
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "ca", predictions[0].PlaceID)
}

func TestAutocomplete_ZeroResultsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "predictions": []}`))
	})

	predictions, err := c.Autocomplete(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, predictions)
}
