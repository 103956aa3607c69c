package traveltime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates, consulting the
// geocode cache first. A cache hit skips the network entirely; the formatted
// address is then simply the input.
func (g *GoogleTravelProvider) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	if address == "" {
		return ports.GeocodeResult{}, fmt.Errorf("geocode: address is empty")
	}

	if g.geocodeCache != nil {
		cached, err := g.geocodeCache.GetMany(ctx, []string{address})
		if err != nil {
			log.Printf("traveltime: geocode cache read failed: %v", err)
		} else if coords, ok := cached[address]; ok {
			return ports.GeocodeResult{Coords: coords, FormattedAddress: address}, nil
		}
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	endpoint := g.baseURL + "/maps/api/geocode/json?" + params.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return ports.GeocodeResult{}, fmt.Errorf("geocode status %q for %q", parsed.Status, address)
	}

	best := parsed.Results[0]
	result := ports.GeocodeResult{
		Coords: domain.Coordinates{
			Lat: best.Geometry.Location.Lat,
			Lon: best.Geometry.Location.Lng,
		},
		FormattedAddress: best.FormattedAddress,
	}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{address: result.Coords}); err != nil {
			log.Printf("traveltime: geocode cache write failed: %v", err)
		}
	}

	return result, nil
}
