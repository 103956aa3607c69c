package traveltime

import (
	"errors"
	"net/http"
	"time"

	"field-rounds-service/internal/ports"
)

// GoogleTravelProvider implements the travel-time oracle, geocoding, and the
// cosmetic restaurant lookup against the Google Maps web services.
//
// It coordinates:
//   - Batched distance-matrix requests (bounded chunk size)
//   - Inter-request pacing against the service rate limit
//   - Persistent travel-time and geocode caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleTravelProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	chunkSize    int
	pacing       time.Duration
	travelCache  ports.TravelTimeCache
	geocodeCache ports.GeocodeCache
}

func NewGoogleTravelProvider(
	apiKey string,
	travelCache ports.TravelTimeCache,
	geocodeCache ports.GeocodeCache,
) (*GoogleTravelProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	return &GoogleTravelProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		chunkSize:    8,
		pacing:       100 * time.Millisecond,
		travelCache:  travelCache,
		geocodeCache: geocodeCache,
	}, nil
}
