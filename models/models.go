package models

// Restaurant is one row of the restaurant dataset. Values are copied out of the
// dataset and never mutated after load.
type Restaurant struct {
	ID                int64   `json:"id"`
	Name              string  `json:"restaurant_name"`
	CountryCode       int     `json:"country_code"`
	Country           string  `json:"country"`
	City              string  `json:"city"`
	Address           string  `json:"address,omitempty"`
	Locality          string  `json:"locality,omitempty"`
	Cuisines          string  `json:"cuisines"`
	CostForTwo        float64 `json:"average_cost_for_two"`
	Currency          string  `json:"currency,omitempty"`
	Rating            float64 `json:"aggregate_rating"`
	RatingText        string  `json:"rating_text,omitempty"`
	Votes             int     `json:"votes,omitempty"`
	HasOnlineDelivery bool    `json:"has_online_delivery"`
	HasTableBooking   bool    `json:"has_table_booking"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`

	// Geocoded is false when the source row had no usable coordinates.
	Geocoded bool `json:"geocoded"`
}

// Country is a distinct (code, name) pair derived from the dataset.
type Country struct {
	Code int    `json:"country_code"`
	Name string `json:"country"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is a single pin handed to the map widget.
type Marker struct {
	Location   GeoPoint `json:"location"`
	Label      string   `json:"label"`
	Address    string   `json:"address,omitempty"`
	Cuisines   string   `json:"cuisines,omitempty"`
	CostForTwo float64  `json:"cost_for_two"`
	Rating     float64  `json:"rating"`
}

// MapView is everything the map sink needs to draw a result set.
type MapView struct {
	Center  GeoPoint `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}
