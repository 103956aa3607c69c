package kml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"

	"field-rounds-service/internal/domain"
	"field-rounds-service/internal/ports"
)

// Importer fetches a shared My Maps document in KML form and converts its
// placemarks into planning stops. Folder names become stop layers; scheduling
// roles and master coordinates are applied here, once, so nothing downstream
// re-parses display names.
type Importer struct {
	session *http.Client
	baseURL string
}

func NewImporter() *Importer {
	return &Importer{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: "https://www.google.com",
	}
}

// NewImporterWithBase is used by tests to point the importer at a stub server.
func NewImporterWithBase(baseURL string) *Importer {
	i := NewImporter()
	i.baseURL = baseURL
	return i
}

type kmlDocument struct {
	Document struct {
		Name    string      `xml:"name"`
		Folders []kmlFolder `xml:"Folder"`
		// Placemarks directly under Document, outside any folder.
		Placemarks []kmlPlacemark `xml:"Placemark"`
	} `xml:"Document"`
}

type kmlFolder struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// Import fetches the map with the given id and converts every point placemark
// in the included layers. An empty includeLayers imports every layer. Layer
// matching is width-folded and case-insensitive.
func (im *Importer) Import(ctx context.Context, mapID string, includeLayers []string) (*ports.ImportedMap, error) {
	if mapID == "" {
		return nil, fmt.Errorf("kml import: map id is empty")
	}

	params := url.Values{}
	params.Set("mid", mapID)
	params.Set("forcekml", "1")
	endpoint := im.baseURL + "/maps/d/kml?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("kml import: create request: %w", err)
	}

	resp, err := im.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kml import: fetch map %q: %w", mapID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kml import: fetch map %q: status %d: %s",
			mapID, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return Parse(resp.Body, includeLayers)
}

// Parse converts a KML document into stops. Split from Import so tests and
// file-based workflows can feed documents directly.
func Parse(r io.Reader, includeLayers []string) (*ports.ImportedMap, error) {
	var doc kmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("kml import: parse document: %w", err)
	}

	include := map[string]struct{}{}
	for _, l := range includeLayers {
		include[foldLayer(l)] = struct{}{}
	}

	res := &ports.ImportedMap{Name: strings.TrimSpace(doc.Document.Name)}

	folders := doc.Document.Folders
	if len(doc.Document.Placemarks) > 0 {
		folders = append(folders, kmlFolder{Name: "", Placemarks: doc.Document.Placemarks})
	}

	nextID := 1
	for _, folder := range folders {
		layer := strings.TrimSpace(folder.Name)
		res.Layers = append(res.Layers, layer)

		if len(include) > 0 {
			if _, ok := include[foldLayer(layer)]; !ok {
				continue
			}
		}

		for _, pm := range folder.Placemarks {
			name := strings.TrimSpace(pm.Name)
			if name == "" {
				continue
			}

			coords, ok := parsePointCoordinates(pm.Point.Coordinates)
			if !ok {
				res.Advisories = append(res.Advisories,
					fmt.Sprintf("skipped %q: placemark has no point coordinates", name))
				continue
			}

			stop := domain.Stop{
				ID:     nextID,
				Name:   name,
				Layer:  layer,
				Note:   strings.TrimSpace(pm.Description),
				Coords: coords,
				Role:   domain.RoleForName(name),
			}

			// Master locations win over whatever the map has drawn.
			if m, ok := domain.MatchMasterLocation(name); ok {
				stop.Coords = m.Coords
			}

			if isConstructionLayer(layer) && !domain.HasSiteQualifier(name) {
				res.Advisories = append(res.Advisories,
					fmt.Sprintf("%q (%s layer) does not end with an office/site qualifier", name, layer))
			}

			res.Stops = append(res.Stops, stop)
			nextID++
		}
	}

	return res, nil
}

func foldLayer(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

func isConstructionLayer(layer string) bool {
	return strings.Contains(foldLayer(layer), "construction")
}

// parsePointCoordinates reads the KML "lon,lat[,alt]" coordinate form.
func parsePointCoordinates(raw string) (domain.Coordinates, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Coordinates{}, false
	}

	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return domain.Coordinates{}, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, false
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true
}
