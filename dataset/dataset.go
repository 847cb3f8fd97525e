// Package dataset holds the restaurant records loaded at startup and the
// country/city lookups derived from them. A Dataset is built once and only
// read afterwards, so it can be shared by concurrent requests without locking.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"dinepick/models"
)

// Record invariant violations returned by Check.
var (
	ErrEmptyName     = errors.New("restaurant name is empty")
	ErrRatingRange   = errors.New("aggregate rating outside [0,5]")
	ErrNegativeCost  = errors.New("average cost for two is negative")
	ErrNoCountryCode = errors.New("country code is missing")
)

// Dataset is a read-only handle over the loaded records.
type Dataset struct {
	records []models.Restaurant
	lookup  *Lookup
}

// New copies records into a fresh Dataset and builds its lookup tables.
func New(records []models.Restaurant) *Dataset {
	rs := make([]models.Restaurant, len(records))
	copy(rs, records)
	return &Dataset{records: rs, lookup: newLookup(rs)}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// At returns a copy of the i-th record in load order.
func (d *Dataset) At(i int) models.Restaurant { return d.records[i] }

// Lookup returns the country/city projection of the dataset.
func (d *Dataset) Lookup() *Lookup { return d.lookup }

// Check reports whether r satisfies the record invariants.
func Check(r models.Restaurant) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.CountryCode == 0 {
		return ErrNoCountryCode
	}
	if math.IsNaN(r.Rating) || r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("%w: %v", ErrRatingRange, r.Rating)
	}
	if math.IsNaN(r.CostForTwo) || math.IsInf(r.CostForTwo, 0) || r.CostForTwo < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeCost, r.CostForTwo)
	}
	return nil
}

// ValidCoordinates reports whether lat/lon can be drawn on a map. The source
// data uses 0,0 for restaurants that were never geocoded.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return lat != 0 || lon != 0
}
