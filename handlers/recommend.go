package handlers

import (
	"errors"
	"io"
	"net/http"

	"dinepick/logging"
	"dinepick/mapview"
	"dinepick/metrics"
	"dinepick/models"
	"dinepick/recommend"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 64 << 10

const notFoundMessage = "no matching restaurants found"

// RecommendResponse is the JSON body of a recommendation.
type RecommendResponse struct {
	Found       bool                `json:"found"`
	Count       int                 `json:"count"`
	Mode        string              `json:"mode"`
	Message     string              `json:"message,omitempty"`
	Restaurants []models.Restaurant `json:"restaurants"`
	Map         *models.MapView     `json:"map,omitempty"`
}

// RecommendHandler serves GET (query parameters) and POST (JSON body)
// recommendation requests.
func RecommendHandler(engine *recommend.Engine, def recommend.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			c    recommend.Criteria
			mode recommend.Mode
			err  error
		)

		if r.Method == http.MethodPost {
			body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if readErr != nil {
				respondError(w, r, http.StatusRequestEntityTooLarge, CodeInvalidJSON, "request body too large")
				return
			}
			c, mode, err = DecodeCriteria(body, def)
		} else {
			c, mode, err = ParseCriteria(r.URL.Query(), def)
		}
		if err == nil {
			var res recommend.Result
			res, err = engine.Recommend(c, mode)
			if err == nil {
				writeResult(w, r, res)
				return
			}
		}

		var ve *recommend.ValidationError
		if errors.As(err, &ve) {
			metrics.RecordRecommendation(mode.Name, metrics.OutcomeInvalid, 0)
			logging.Ctx(r.Context()).Info().Str("mode", mode.Name).Str("reason", ve.Error()).Msg("criteria rejected")
			respondValidation(w, r, ve)
			return
		}

		logging.Ctx(r.Context()).Warn().Err(err).Msg("malformed recommendation request")
		respondError(w, r, http.StatusBadRequest, CodeInvalidJSON, "request body is not valid JSON")
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, res recommend.Result) {
	resp := RecommendResponse{
		Found:       res.Found(),
		Count:       len(res.Restaurants),
		Mode:        res.Mode,
		Restaurants: res.Restaurants,
	}
	if resp.Restaurants == nil {
		resp.Restaurants = []models.Restaurant{}
	}

	outcome := metrics.OutcomeFound
	if !resp.Found {
		outcome = metrics.OutcomeEmpty
		resp.Message = notFoundMessage
	} else {
		resp.Map = mapview.Build(res.Restaurants)
	}
	metrics.RecordRecommendation(res.Mode, outcome, resp.Count)

	logging.Ctx(r.Context()).Debug().Str("mode", res.Mode).Int("count", resp.Count).Msg("recommendation served")
	respondJSON(w, r, http.StatusOK, resp)
}
