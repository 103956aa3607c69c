package traveltime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

const restaurantSearchRadiusMeters = 2000

type nearbySearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Rating   float64  `json:"rating"`
		Types    []string `json:"types"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// FindRestaurants returns up to limit restaurants near the given point,
// best-rated first. Convenience stores are filtered out even though the
// service tags them as food places.
func (g *GoogleTravelProvider) FindRestaurants(ctx context.Context, at domain.Coordinates, limit int) ([]ports.Place, error) {
	if limit <= 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", at.Lat, at.Lon))
	params.Set("radius", fmt.Sprintf("%d", restaurantSearchRadiusMeters))
	params.Set("type", "restaurant")
	params.Set("key", g.apiKey)

	endpoint := g.baseURL + "/maps/api/place/nearbysearch/json?" + params.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search request: %w", err)
	}
	defer resp.Body.Close()

	var parsed nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode nearby search response: %w", err)
	}
	if parsed.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("nearby search status %q", parsed.Status)
	}

	places := make([]ports.Place, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if isConvenienceStore(r.Types) {
			continue
		}
		places = append(places, ports.Place{
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Rating:   r.Rating,
			Coords: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lon: r.Geometry.Location.Lng,
			},
		})
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Rating > places[j].Rating
	})

	if len(places) > limit {
		places = places[:limit]
	}
	return places, nil
}

func isConvenienceStore(types []string) bool {
	for _, t := range types {
		if strings.EqualFold(t, "convenience_store") {
			return true
		}
	}
	return false
}
