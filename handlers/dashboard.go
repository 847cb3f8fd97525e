package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"dinepick/dataset"
	"dinepick/logging"
	"dinepick/mapview"
	"dinepick/metrics"
	"dinepick/models"
	"dinepick/recommend"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"availability": func(b bool) string {
		if b {
			return "Available"
		}
		return "Not Available"
	},
	"money": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).ParseFS(templateFS, "templates/*.html"))

type dashboardForm struct {
	CountryCode int
	City        string
	Cuisine     string
	Budget      string
}

type dashboardPage struct {
	Countries   []models.Country
	Cities      []string
	Form        dashboardForm
	Submitted   bool
	Errors      []recommend.FieldError
	Restaurants []models.Restaurant
	Map         *models.MapView
}

// DashboardHandler renders the guided search form and, once submitted, the
// recommendation cards and map.
func DashboardHandler(engine *recommend.Engine, lookup *dataset.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := dashboardPage{
			Countries: lookup.Countries(),
			Submitted: q.Has("find"),
			Form: dashboardForm{
				City:    q.Get("city"),
				Cuisine: q.Get("cuisine"),
				Budget:  q.Get("budget"),
			},
		}

		page.Form.CountryCode, _ = strconv.Atoi(q.Get("country_code"))
		if page.Form.CountryCode == 0 && len(page.Countries) > 0 {
			page.Form.CountryCode = page.Countries[0].Code
		}
		page.Cities = lookup.Cities(page.Form.CountryCode)

		if page.Submitted {
			runDashboardQuery(r, engine, &page)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "dashboard.html", page); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("render dashboard")
		}
	}
}

func runDashboardQuery(r *http.Request, engine *recommend.Engine, page *dashboardPage) {
	q := r.URL.Query()
	q.Del("mode")

	c, mode, err := ParseCriteria(q, recommend.Guided)
	if err == nil {
		var res recommend.Result
		if res, err = engine.Recommend(c, mode); err == nil {
			page.Restaurants = res.Restaurants
			page.Map = mapview.Build(res.Restaurants)
			outcome := metrics.OutcomeFound
			if !res.Found() {
				outcome = metrics.OutcomeEmpty
			}
			metrics.RecordRecommendation(mode.Name, outcome, len(res.Restaurants))
			return
		}
	}

	var ve *recommend.ValidationError
	if errors.As(err, &ve) {
		page.Errors = ve.Fields
		metrics.RecordRecommendation(mode.Name, metrics.OutcomeInvalid, 0)
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Msg("dashboard recommendation")
	page.Errors = []recommend.FieldError{{Field: "request", Message: "could not be processed"}}
}

// AboutHandler renders the project description page.
func AboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "about.html", nil); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("render about")
		}
	}
}
