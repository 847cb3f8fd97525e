package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dinepick/dataset"
	"dinepick/models"
)

// CountriesHandler lists the distinct countries for the country selector.
func CountriesHandler(lookup *dataset.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		countries := lookup.Countries()
		if countries == nil {
			countries = []models.Country{}
		}
		respondJSON(w, r, http.StatusOK, countries)
	}
}

// CountryCitiesHandler lists the cities of the country in the {code} path
// parameter.
func CountryCitiesHandler(lookup *dataset.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "code")
		code, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, CodeValidation, "country code must be an integer")
			return
		}
		if !lookup.HasCountry(code) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "unknown country code "+raw)
			return
		}
		respondJSON(w, r, http.StatusOK, lookup.Cities(code))
	}
}

// CitiesHandler lists the cities of ?country=<name>.
func CitiesHandler(lookup *dataset.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("country")
		if name == "" {
			respondError(w, r, http.StatusBadRequest, CodeValidation, "country is required")
			return
		}
		code, ok := lookup.CountryByName(name)
		if !ok {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "unknown country "+name)
			return
		}
		respondJSON(w, r, http.StatusOK, lookup.Cities(code))
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// HealthHandler reports liveness and the size of the loaded dataset.
func HealthHandler(ds *dataset.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Records: ds.Len()})
	}
}
