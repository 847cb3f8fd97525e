// Package mapview turns a recommendation result into markers for the map
// widget. Restaurants without usable coordinates are left off the map.
package mapview

import (
	"dinepick/dataset"
	"dinepick/models"
)

// DefaultZoom matches a city-level view.
const DefaultZoom = 12

// Build returns the map for rs, or nil when none of them can be placed.
func Build(rs []models.Restaurant) *models.MapView {
	var (
		markers        []models.Marker
		sumLat, sumLon float64
	)
	for _, r := range rs {
		if !r.Geocoded || !dataset.ValidCoordinates(r.Latitude, r.Longitude) {
			continue
		}
		markers = append(markers, models.Marker{
			Location:   models.GeoPoint{Lat: r.Latitude, Lon: r.Longitude},
			Label:      r.Name,
			Address:    r.Address,
			Cuisines:   r.Cuisines,
			CostForTwo: r.CostForTwo,
			Rating:     r.Rating,
		})
		sumLat += r.Latitude
		sumLon += r.Longitude
	}
	if len(markers) == 0 {
		return nil
	}

	n := float64(len(markers))
	return &models.MapView{
		Center:  models.GeoPoint{Lat: sumLat / n, Lon: sumLon / n},
		Zoom:    DefaultZoom,
		Markers: markers,
	}
}
