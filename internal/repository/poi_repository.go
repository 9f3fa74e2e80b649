package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/mapmaker-go/internal/models"
)

// PoiRepository handles database operations for points of interest
type PoiRepository struct {
	db *sql.DB
}

// NewPoiRepository creates a new POI repository
func NewPoiRepository(db *sql.DB) *PoiRepository {
	return &PoiRepository{db: db}
}

const poiColumns = `id, name, type, rating, COALESCE(place_id, ''), latitude, longitude,
	COALESCE(vicinity, ''), COALESCE(address, '')`

// ListByType returns every POI of the given type, ordered by id
func (r *PoiRepository) ListByType(ctx context.Context, poiType string) ([]models.PointOfInterest, error) {
	query := `SELECT ` + poiColumns + ` FROM points_of_interest WHERE type = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(poiType))
	if err != nil {
		return nil, fmt.Errorf("failed to query points of interest by type: %w", err)
	}
	defer rows.Close()
	return scanPois(rows)
}

// ListAll returns every stored POI, ordered by id
func (r *PoiRepository) ListAll(ctx context.Context) ([]models.PointOfInterest, error) {
	query := `SELECT ` + poiColumns + ` FROM points_of_interest ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query points of interest: %w", err)
	}
	defer rows.Close()
	return scanPois(rows)
}

// CountByType returns the number of POIs of the given type
func (r *PoiRepository) CountByType(ctx context.Context, poiType string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM points_of_interest WHERE type = ?`, strings.ToLower(poiType)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count points of interest: %w", err)
	}
	return count, nil
}

// Upsert inserts a POI or, when its place_id already exists, updates it in place.
// POIs without a place_id are always inserted.
func (r *PoiRepository) Upsert(ctx context.Context, poi *models.PointOfInterest) error {
	query := `
		INSERT INTO points_of_interest (name, type, rating, place_id, latitude, longitude, vicinity, address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(place_id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			rating = excluded.rating,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			vicinity = excluded.vicinity,
			address = excluded.address
		RETURNING id
	`

	var placeID any
	if poi.PlaceID != "" {
		placeID = poi.PlaceID
	}

	err := r.db.QueryRowContext(ctx, query,
		poi.Name,
		strings.ToLower(poi.Type),
		poi.Rating,
		placeID,
		poi.Lat,
		poi.Lng,
		poi.Vicinity,
		poi.Address,
	).Scan(&poi.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert point of interest: %w", err)
	}
	return nil
}

func scanPois(rows *sql.Rows) ([]models.PointOfInterest, error) {
	var pois []models.PointOfInterest
	for rows.Next() {
		var p models.PointOfInterest
		var rating sql.NullFloat64
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Type,
			&rating,
			&p.PlaceID,
			&p.Lat,
			&p.Lng,
			&p.Vicinity,
			&p.Address,
		); err != nil {
			return nil, fmt.Errorf("failed to scan point of interest: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			p.Rating = &v
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate points of interest: %w", err)
	}
	return pois, nil
}
