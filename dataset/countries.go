package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dinepick/models"
)

// LoadCountryNames reads a two-column "Country Code,Country" file.
func LoadCountryNames(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open country codes %q: %w", path, err)
	}
	defer f.Close()

	names, err := ReadCountryNames(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return names, nil
}

// ReadCountryNames parses country code rows from r.
func ReadCountryNames(r io.Reader) (map[int]string, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexHeader(header)
	codeIdx, ok := cols[strings.ToLower(ColCountryCode)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColCountryCode)
	}
	nameIdx, ok := cols[strings.ToLower(ColCountry)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColCountry)
	}

	names := make(map[int]string)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		code, err := strconv.Atoi(strings.TrimSpace(row[codeIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColCountryCode, err)
		}
		names[code] = strings.TrimSpace(row[nameIdx])
	}
	return names, nil
}

// ApplyCountryNames fills blank country names from names.
func ApplyCountryNames(records []models.Restaurant, names map[int]string) {
	for i := range records {
		if records[i].Country != "" {
			continue
		}
		if n, ok := names[records[i].CountryCode]; ok {
			records[i].Country = n
		}
	}
}
