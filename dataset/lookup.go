package dataset

import (
	"strings"

	"dinepick/models"
)

// Lookup is the distinct countries and cities of a dataset, in order of first
// appearance, for populating selection widgets.
type Lookup struct {
	countries []models.Country
	byName    map[string]int
	cities    map[int][]string
}

func newLookup(records []models.Restaurant) *Lookup {
	l := &Lookup{
		byName: make(map[string]int),
		cities: make(map[int][]string),
	}
	countryIdx := make(map[int]int)
	seenCity := make(map[int]map[string]bool)

	for _, r := range records {
		i, ok := countryIdx[r.CountryCode]
		if !ok {
			i = len(l.countries)
			countryIdx[r.CountryCode] = i
			l.countries = append(l.countries, models.Country{Code: r.CountryCode})
			seenCity[r.CountryCode] = make(map[string]bool)
		}
		// The display name comes from the first row that has one.
		if l.countries[i].Name == "" && r.Country != "" {
			l.countries[i].Name = r.Country
			l.byName[strings.ToLower(r.Country)] = r.CountryCode
		}
		if r.City == "" || seenCity[r.CountryCode][r.City] {
			continue
		}
		seenCity[r.CountryCode][r.City] = true
		l.cities[r.CountryCode] = append(l.cities[r.CountryCode], r.City)
	}
	return l
}

// Countries returns the distinct countries.
func (l *Lookup) Countries() []models.Country {
	out := make([]models.Country, len(l.countries))
	copy(out, l.countries)
	return out
}

// HasCountry reports whether code appears in the dataset.
func (l *Lookup) HasCountry(code int) bool {
	_, ok := l.cities[code]
	if ok {
		return true
	}
	for _, c := range l.countries {
		if c.Code == code {
			return true
		}
	}
	return false
}

// CountryByName resolves a display name (case-insensitive) to its code.
func (l *Lookup) CountryByName(name string) (int, bool) {
	code, ok := l.byName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Cities returns the distinct cities of the given country code.
func (l *Lookup) Cities(code int) []string {
	cs := l.cities[code]
	out := make([]string, len(cs))
	copy(out, cs)
	return out
}

// CitiesByName returns the cities of the named country, or nil if unknown.
func (l *Lookup) CitiesByName(country string) []string {
	code, ok := l.CountryByName(country)
	if !ok {
		return nil
	}
	return l.Cities(code)
}
