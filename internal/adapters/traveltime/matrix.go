package traveltime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"field-rounds-service/internal/domain"
)

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// DurationMatrix returns the full n x n driving-time matrix in seconds for the
// given locations.
//
// Cached pairs are served from the travel-time cache; only the missing pairs
// are fetched, in chunks bounded by the provider's chunk size, with pacing
// between requests. Pairs the service reports as unroutable are recorded with
// the unreachable sentinel so planning can proceed. Cache write failures are
// logged and ignored.
func (g *GoogleTravelProvider) DurationMatrix(ctx context.Context, locations []domain.Coordinates) ([][]int, error) {
	n := len(locations)
	if n == 0 {
		return nil, fmt.Errorf("duration matrix: no locations")
	}

	keys := make([]string, n)
	for i, loc := range locations {
		keys[i] = loc.Key()
	}

	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
		for j := range matrix[i] {
			matrix[i][j] = -1
		}
		matrix[i][i] = 0
	}

	// Serve what we can from the cache, one origin row at a time.
	missing := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		var cached map[string]int
		if g.travelCache != nil {
			var err error
			cached, err = g.travelCache.GetMany(ctx, keys[i], keys)
			if err != nil {
				log.Printf("traveltime: cache read failed origin=%s: %v", keys[i], err)
				cached = nil
			}
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if sec, ok := cached[keys[j]]; ok {
				matrix[i][j] = sec
				continue
			}
			missing[i] = append(missing[i], j)
		}
	}

	if err := g.fetchMissing(ctx, locations, matrix, missing); err != nil {
		return nil, fmt.Errorf("duration matrix: %w", err)
	}

	// Persist the freshly fetched rows, best effort.
	if g.travelCache != nil {
		for i, dests := range missing {
			row := make(map[string]int, len(dests))
			for _, j := range dests {
				row[keys[j]] = matrix[i][j]
			}
			if len(row) == 0 {
				continue
			}
			if err := g.travelCache.PutMany(ctx, keys[i], row); err != nil {
				log.Printf("traveltime: cache write failed origin=%s: %v", keys[i], err)
			}
		}
	}

	return matrix, nil
}

// fetchMissing fills the uncached cells of matrix via the distance-matrix
// endpoint, batching origins and destinations into chunks.
func (g *GoogleTravelProvider) fetchMissing(
	ctx context.Context,
	locations []domain.Coordinates,
	matrix [][]int,
	missing map[int][]int,
) error {
	if len(missing) == 0 {
		return nil
	}

	origins := make([]int, 0, len(missing))
	for i := range missing {
		origins = append(origins, i)
	}
	sort.Ints(origins)

	first := true
	for os := 0; os < len(origins); os += g.chunkSize {
		oe := os + g.chunkSize
		if oe > len(origins) {
			oe = len(origins)
		}
		originChunk := origins[os:oe]

		// Union of destinations still needed by any origin in this chunk.
		destSet := map[int]struct{}{}
		for _, i := range originChunk {
			for _, j := range missing[i] {
				destSet[j] = struct{}{}
			}
		}
		dests := make([]int, 0, len(destSet))
		for j := range destSet {
			dests = append(dests, j)
		}
		sort.Ints(dests)

		for ds := 0; ds < len(dests); ds += g.chunkSize {
			de := ds + g.chunkSize
			if de > len(dests) {
				de = len(dests)
			}
			destChunk := dests[ds:de]

			if !first {
				if err := g.pace(ctx); err != nil {
					return err
				}
			}
			first = false

			if err := g.fetchChunk(ctx, locations, matrix, originChunk, destChunk); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *GoogleTravelProvider) fetchChunk(
	ctx context.Context,
	locations []domain.Coordinates,
	matrix [][]int,
	originChunk []int,
	destChunk []int,
) error {
	params := url.Values{}
	params.Set("origins", joinCoords(locations, originChunk))
	params.Set("destinations", joinCoords(locations, destChunk))
	params.Set("mode", "driving")
	params.Set("key", g.apiKey)

	endpoint := g.baseURL + "/maps/api/distancematrix/json?" + params.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return fmt.Errorf("distance matrix request: %w", err)
	}
	defer resp.Body.Close()

	var parsed distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode distance matrix response: %w", err)
	}
	if parsed.Status != "OK" {
		return fmt.Errorf("distance matrix status %q", parsed.Status)
	}
	if len(parsed.Rows) != len(originChunk) {
		return fmt.Errorf("distance matrix returned %d rows, want %d", len(parsed.Rows), len(originChunk))
	}

	for ri, row := range parsed.Rows {
		if len(row.Elements) != len(destChunk) {
			return fmt.Errorf("distance matrix row %d has %d elements, want %d", ri, len(row.Elements), len(destChunk))
		}
		i := originChunk[ri]
		for ei, el := range row.Elements {
			j := destChunk[ei]
			if i == j {
				continue
			}
			if el.Status != "OK" {
				log.Printf("traveltime: element %s -> %s status=%s, marking unreachable",
					locations[i].Key(), locations[j].Key(), el.Status)
				matrix[i][j] = domain.UnreachableSeconds
				continue
			}
			matrix[i][j] = el.Duration.Value
		}
	}

	return nil
}

func joinCoords(locations []domain.Coordinates, idx []int) string {
	parts := make([]string, len(idx))
	for k, i := range idx {
		parts[k] = fmt.Sprintf("%f,%f", locations[i].Lat, locations[i].Lon)
	}
	return strings.Join(parts, "|")
}
