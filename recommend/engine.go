// Package recommend filters the restaurant dataset by user criteria and ranks
// the survivors.
//
// One Engine covers both behaviours of the product: the guided dashboard
// (exact city, rank by closeness to a target budget) and free-text search
// (city substring, budget as an upper bound, best rated first). The
// difference is carried by Mode.
package recommend

import (
	"math"
	"sort"
	"strings"

	"dinepick/dataset"
	"dinepick/models"
)

// DefaultLimit is the maximum number of restaurants returned.
const DefaultLimit = 10

// CityMatch selects how the city criterion is compared.
type CityMatch int

const (
	// CityExact requires byte-for-byte equality with the record's city.
	CityExact CityMatch = iota
	// CitySubstring requires the city to contain the criterion.
	CitySubstring
)

// BudgetMode selects how the budget criterion is applied.
type BudgetMode int

const (
	// BudgetNearest keeps every candidate and orders by |cost - budget|.
	BudgetNearest BudgetMode = iota
	// BudgetThreshold drops candidates whose cost exceeds the budget.
	BudgetThreshold
)

// Mode is the engine configuration.
type Mode struct {
	Name            string
	City            CityMatch
	Budget          BudgetMode
	RankByRating    bool
	RequireLocation bool
}

var (
	// Guided is the dashboard behaviour: pick a country and city, then get
	// the restaurants whose price is closest to the budget.
	Guided = Mode{Name: "guided", City: CityExact, Budget: BudgetNearest, RequireLocation: true}

	// Search is the API search behaviour: loose city match, budget ceiling,
	// best rated first.
	Search = Mode{Name: "search", City: CitySubstring, Budget: BudgetThreshold, RankByRating: true}
)

// ModeByName resolves "guided" or "search".
func ModeByName(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Guided.Name:
		return Guided, true
	case Search.Name:
		return Search, true
	}
	return Mode{}, false
}

// Result is the outcome of a recommendation call. An empty result is a
// normal value, not an error.
type Result struct {
	Mode        string
	Restaurants []models.Restaurant
}

// Found reports whether any restaurant matched.
func (r Result) Found() bool { return len(r.Restaurants) > 0 }

// Engine runs recommendations over a read-only dataset.
type Engine struct {
	data  *dataset.Dataset
	limit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit lowers the result cap. Values outside 1..DefaultLimit keep the
// default.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= DefaultLimit {
			e.limit = n
		}
	}
}

// New returns an Engine over data.
func New(data *dataset.Dataset, opts ...Option) *Engine {
	e := &Engine{data: data, limit: DefaultLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend validates c, filters the dataset and returns at most the
// configured number of restaurants. The only error is *ValidationError.
func (e *Engine) Recommend(c Criteria, mode Mode) (Result, error) {
	if err := c.Validate(mode); err != nil {
		return Result{Mode: mode.Name}, err
	}

	match := newMatcher(c, mode)
	var picked []models.Restaurant
	for i := 0; i < e.data.Len(); i++ {
		r := e.data.At(i)
		if match(r) {
			picked = append(picked, r)
		}
	}
	if len(picked) == 0 {
		return Result{Mode: mode.Name}, nil
	}

	switch {
	case c.Budget != nil && mode.Budget == BudgetNearest:
		target := *c.Budget
		sort.SliceStable(picked, func(i, j int) bool {
			di := math.Abs(picked[i].CostForTwo - target)
			dj := math.Abs(picked[j].CostForTwo - target)
			if di != dj {
				return di < dj
			}
			return picked[i].Rating > picked[j].Rating
		})
	case mode.RankByRating:
		sort.SliceStable(picked, func(i, j int) bool {
			return picked[i].Rating > picked[j].Rating
		})
	}

	if len(picked) > e.limit {
		picked = picked[:e.limit]
	}
	return Result{Mode: mode.Name, Restaurants: picked}, nil
}

// newMatcher builds the conjunction of all present predicates.
func newMatcher(c Criteria, mode Mode) func(models.Restaurant) bool {
	var preds []func(models.Restaurant) bool

	if c.CountryCode != nil {
		code := *c.CountryCode
		preds = append(preds, func(r models.Restaurant) bool { return r.CountryCode == code })
	}
	if strings.TrimSpace(c.Country) != "" {
		country := c.Country
		preds = append(preds, func(r models.Restaurant) bool { return r.Country == country })
	}
	if strings.TrimSpace(c.City) != "" {
		city := c.City
		if mode.City == CitySubstring {
			needle := strings.ToLower(strings.TrimSpace(city))
			preds = append(preds, func(r models.Restaurant) bool {
				return strings.Contains(strings.ToLower(r.City), needle)
			})
		} else {
			preds = append(preds, func(r models.Restaurant) bool { return r.City == city })
		}
	}
	if cuisine := strings.TrimSpace(c.Cuisine); cuisine != "" {
		needle := strings.ToLower(cuisine)
		preds = append(preds, func(r models.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Cuisines), needle)
		})
	}
	if c.Budget != nil && mode.Budget == BudgetThreshold {
		limit := *c.Budget
		preds = append(preds, func(r models.Restaurant) bool { return r.CostForTwo <= limit })
	}

	return func(r models.Restaurant) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
