package database

import (
	"context"
	"database/sql"
	"fmt"

	"dinepick/dataset"
	"dinepick/logging"
	"dinepick/models"
)

const selectRestaurants = `
	SELECT r.id, r.restaurant_name, r.country_code, COALESCE(r.country, ''), r.city,
	       COALESCE(r.address, ''), COALESCE(r.locality, ''), COALESCE(r.cuisines, ''),
	       r.average_cost_for_two, COALESCE(r.currency, ''), r.aggregate_rating,
	       COALESCE(r.rating_text, ''), COALESCE(r.votes, 0),
	       COALESCE(r.has_online_delivery, false), COALESCE(r.has_table_booking, false),
	       r.latitude, r.longitude
	FROM restaurants r
	ORDER BY r.id ASC
`

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(rows rowScanner) (models.Restaurant, error) {
	var (
		r        models.Restaurant
		lat, lon sql.NullFloat64
	)
	err := rows.Scan(&r.ID, &r.Name, &r.CountryCode, &r.Country, &r.City,
		&r.Address, &r.Locality, &r.Cuisines,
		&r.CostForTwo, &r.Currency, &r.Rating,
		&r.RatingText, &r.Votes,
		&r.HasOnlineDelivery, &r.HasTableBooking,
		&lat, &lon)
	if err != nil {
		return r, err
	}
	if lat.Valid && lon.Valid && dataset.ValidCoordinates(lat.Float64, lon.Float64) {
		r.Latitude, r.Longitude, r.Geocoded = lat.Float64, lon.Float64, true
	}
	return r, nil
}

// LoadRestaurants reads every row of the restaurants table. Rows breaking a
// record invariant are skipped with a warning, as the CSV loader does.
func LoadRestaurants(ctx context.Context, db *sql.DB) ([]models.Restaurant, error) {
	rows, err := db.QueryContext(ctx, selectRestaurants)
	if err != nil {
		return nil, fmt.Errorf("database: query restaurants: %w", err)
	}
	defer rows.Close()

	var out []models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan restaurant: %w", err)
		}
		if err := dataset.Check(r); err != nil {
			logging.Warn().Int64("id", r.ID).Err(err).Msg("dropping restaurant row")
			continue
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database: iterate restaurants: %w", err)
	}
	return out, nil
}
