package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dinepick/logging"
	"dinepick/models"
)

// Column headers of the restaurant CSV.
const (
	ColID          = "Restaurant ID"
	ColName        = "Restaurant Name"
	ColCountryCode = "Country Code"
	ColCountry     = "Country"
	ColCity        = "City"
	ColAddress     = "Address"
	ColLocality    = "Locality"
	ColCuisines    = "Cuisines"
	ColCost        = "Average Cost for two"
	ColCurrency    = "Currency"
	ColRating      = "Aggregate rating"
	ColRatingText  = "Rating text"
	ColVotes       = "Votes"
	ColDelivery    = "Has Online delivery"
	ColBooking     = "Has Table booking"
	ColLatitude    = "Latitude"
	ColLongitude   = "Longitude"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{ColName, ColCountryCode, ColCity, ColCuisines, ColCost, ColRating}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// LoadCSV reads the restaurant file at path. Rows that fail to parse or break
// a record invariant are dropped with a warning; a missing file or a missing
// required column is an error.
func LoadCSV(path string) ([]models.Restaurant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses restaurant rows from r.
func ReadCSV(r io.Reader) ([]models.Restaurant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexHeader(header)
	for _, name := range RequiredColumns {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var (
		out     []models.Restaurant
		line    = 1
		dropped = 0
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		rec, err := parseRow(cols, row, line)
		if err == nil {
			err = Check(rec)
		}
		if err != nil {
			dropped++
			logging.Warn().Int("line", line).Err(err).Msg("dropping restaurant row")
			continue
		}
		out = append(out, rec)
	}

	if dropped > 0 {
		logging.Info().Int("kept", len(out)).Int("dropped", dropped).Msg("restaurant csv parsed")
	}
	return out, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

type rowReader struct {
	cols map[string]int
	row  []string
}

func (rr rowReader) get(col string) string {
	i, ok := rr.cols[strings.ToLower(col)]
	if !ok || i >= len(rr.row) {
		return ""
	}
	return strings.TrimSpace(rr.row[i])
}

func parseRow(cols map[string]int, row []string, line int) (models.Restaurant, error) {
	rr := rowReader{cols: cols, row: row}
	r := models.Restaurant{
		ID:         int64(line - 1),
		Name:       rr.get(ColName),
		Country:    rr.get(ColCountry),
		City:       rr.get(ColCity),
		Address:    rr.get(ColAddress),
		Locality:   rr.get(ColLocality),
		Cuisines:   rr.get(ColCuisines),
		Currency:   rr.get(ColCurrency),
		RatingText: rr.get(ColRatingText),
	}

	var err error
	if v := rr.get(ColID); v != "" {
		if r.ID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return r, fmt.Errorf("%s %q: %w", ColID, v, err)
		}
	}
	if r.CountryCode, err = strconv.Atoi(rr.get(ColCountryCode)); err != nil {
		return r, fmt.Errorf("%s: %w", ColCountryCode, err)
	}
	if r.CostForTwo, err = parseFloat(rr.get(ColCost)); err != nil {
		return r, fmt.Errorf("%s: %w", ColCost, err)
	}
	if r.Rating, err = parseFloat(rr.get(ColRating)); err != nil {
		return r, fmt.Errorf("%s: %w", ColRating, err)
	}
	if v := rr.get(ColVotes); v != "" {
		if r.Votes, err = strconv.Atoi(v); err != nil {
			return r, fmt.Errorf("%s: %w", ColVotes, err)
		}
	}
	if r.HasOnlineDelivery, err = parseFlag(rr.get(ColDelivery)); err != nil {
		return r, fmt.Errorf("%s: %w", ColDelivery, err)
	}
	if r.HasTableBooking, err = parseFlag(rr.get(ColBooking)); err != nil {
		return r, fmt.Errorf("%s: %w", ColBooking, err)
	}

	// Unparseable coordinates only cost the record its map marker.
	lat, latErr := parseFloat(rr.get(ColLatitude))
	lon, lonErr := parseFloat(rr.get(ColLongitude))
	if latErr == nil && lonErr == nil && ValidCoordinates(lat, lon) {
		r.Latitude, r.Longitude, r.Geocoded = lat, lon, true
	}
	return r, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "1", "true":
		return true, nil
	case "no", "n", "0", "false", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q", s)
}
