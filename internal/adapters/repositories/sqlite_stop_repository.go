package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"field-rounds-service/internal/domain"
)

// SQLite-backed implementation of the StopRepository port. Scheduling roles
// are derived from the master-location table on load, not stored.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Retrieve all stops available for planning, ordered by id.
func (s *SqliteStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		name,
		layer,
		note,
		lon,
		lat,
		stay_override_min
	FROM stops
	ORDER BY stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var (
			id         int
			name       string
			layer      string
			note       string
			lon, lat   float64
			stayOverride sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &layer, &note, &lon, &lat, &stayOverride); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		stop := domain.Stop{
			ID:     id,
			Name:   name,
			Layer:  layer,
			Note:   note,
			Coords: domain.Coordinates{Lon: lon, Lat: lat},
			Role:   domain.RoleForName(name),
		}
		if stayOverride.Valid {
			v := int(stayOverride.Int64)
			stop.StayOverrideMin = &v
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}
