package recommend

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"dinepick/dataset"
	"dinepick/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func names(rs []models.Restaurant) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func sampleDataset() *dataset.Dataset {
	return dataset.New([]models.Restaurant{
		{Name: "Dragon House", CountryCode: 1, Country: "India", City: "Delhi", Cuisines: "Chinese, Thai", CostForTwo: 300, Rating: 4.1},
		{Name: "Roma", CountryCode: 1, Country: "India", City: "Delhi", Cuisines: "Italian", CostForTwo: 700, Rating: 4.5},
		{Name: "Wok Express", CountryCode: 1, Country: "India", City: "New Delhi", Cuisines: "Chinese", CostForTwo: 450, Rating: 3.8},
		{Name: "Peking Duck", CountryCode: 1, Country: "India", City: "Delhi", Cuisines: "CHINESE", CostForTwo: 500, Rating: 4.7},
		{Name: "Bay Grill", CountryCode: 216, Country: "United States", City: "Albany", Cuisines: "American", CostForTwo: 25, Rating: 3.9},
	})
}

func TestRecommendExampleScenario(t *testing.T) {
	ds := dataset.New([]models.Restaurant{
		{Name: "first", CountryCode: 1, City: "Delhi", Cuisines: "Chinese", CostForTwo: 300, Rating: 4.1},
		{Name: "second", CountryCode: 1, City: "Delhi", Cuisines: "Italian", CostForTwo: 700, Rating: 4.5},
	})
	res, err := New(ds).Recommend(Criteria{City: "Delhi", Cuisine: "chinese"}, Search)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := names(res.Restaurants); !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("got %v, want [first]", got)
	}
}

func TestRecommendBudgetDistance(t *testing.T) {
	ds := dataset.New([]models.Restaurant{
		{Name: "pricey", CountryCode: 1, City: "Delhi", Cuisines: "Cafe", CostForTwo: 500, Rating: 5},
		{Name: "cheap", CountryCode: 1, City: "Delhi", Cuisines: "Cafe", CostForTwo: 100, Rating: 1},
	})
	c := Criteria{CountryCode: intPtr(1), City: "Delhi", Budget: floatPtr(120)}
	res, err := New(ds).Recommend(c, Guided)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := names(res.Restaurants); !reflect.DeepEqual(got, []string{"cheap", "pricey"}) {
		t.Errorf("got %v, want [cheap pricey]", got)
	}
}

func TestRecommendTieBreakByRating(t *testing.T) {
	ds := dataset.New([]models.Restaurant{
		{Name: "low", CountryCode: 1, City: "Delhi", CostForTwo: 200, Rating: 3.0},
		{Name: "high", CountryCode: 1, City: "Delhi", CostForTwo: 400, Rating: 4.5},
	})
	c := Criteria{CountryCode: intPtr(1), City: "Delhi", Budget: floatPtr(300)}
	res, err := New(ds).Recommend(c, Guided)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := names(res.Restaurants); !reflect.DeepEqual(got, []string{"high", "low"}) {
		t.Errorf("got %v, want [high low]", got)
	}
}

func TestRecommendCityModes(t *testing.T) {
	e := New(sampleDataset())

	guided, err := e.Recommend(Criteria{Country: "India", City: "Delhi"}, Guided)
	if err != nil {
		t.Fatalf("guided: %v", err)
	}
	for _, r := range guided.Restaurants {
		if r.City != "Delhi" {
			t.Errorf("exact city match returned %q", r.City)
		}
	}
	if len(guided.Restaurants) != 3 {
		t.Errorf("guided: got %d, want 3", len(guided.Restaurants))
	}

	tests := []Criteria{
		{Country: "India", City: "delhi"},
		{Country: "INDIA", City: "Delhi"},
		{Country: "India", City: " Delhi"},
	}
	for _, c := range tests {
		res, err := e.Recommend(c, Guided)
		if err != nil {
			t.Fatalf("%+v: %v", c, err)
		}
		if res.Found() {
			t.Errorf("%+v: exact match should be case and space sensitive, got %v", c, names(res.Restaurants))
		}
	}

	search, err := e.Recommend(Criteria{City: "delhi"}, Search)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(search.Restaurants) != 4 {
		t.Errorf("substring city match: got %d, want 4", len(search.Restaurants))
	}
}

func TestRecommendSearchThresholdAndRating(t *testing.T) {
	res, err := New(sampleDataset()).Recommend(Criteria{City: "Delhi", Budget: floatPtr(500)}, Search)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want := []string{"Peking Duck", "Dragon House", "Wok Express"}
	if got := names(res.Restaurants); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, r := range res.Restaurants {
		if r.CostForTwo > 500 {
			t.Errorf("%s costs %v, over budget", r.Name, r.CostForTwo)
		}
	}
}

func TestRecommendPreservesOrderWithoutRanking(t *testing.T) {
	mode := Mode{Name: "plain", City: CityExact, Budget: BudgetThreshold}
	res, err := New(sampleDataset()).Recommend(Criteria{CountryCode: intPtr(1)}, mode)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want := []string{"Dragon House", "Roma", "Wok Express", "Peking Duck"}
	if got := names(res.Restaurants); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendEmptyIsNotAnError(t *testing.T) {
	res, err := New(sampleDataset()).Recommend(Criteria{Country: "India", City: "Delhi", Cuisine: "Ethiopian"}, Guided)
	if err != nil {
		t.Fatalf("empty result should not be an error, got %v", err)
	}
	if res.Found() {
		t.Errorf("expected not found, got %v", names(res.Restaurants))
	}
}

func TestRecommendValidation(t *testing.T) {
	e := New(sampleDataset())
	tests := []struct {
		name  string
		c     Criteria
		mode  Mode
		field string
	}{
		{"negative budget", Criteria{City: "Delhi", Budget: floatPtr(-5)}, Search, "budget"},
		{"nan budget", Criteria{City: "Delhi", Budget: floatPtr(math.NaN())}, Search, "budget"},
		{"zero country code", Criteria{CountryCode: intPtr(0), City: "Delhi"}, Search, "country_code"},
		{"guided without city", Criteria{Country: "India"}, Guided, "city"},
		{"guided without country", Criteria{City: "Delhi"}, Guided, "country"},
	}
	for _, tt := range tests {
		res, err := e.Recommend(tt.c, tt.mode)
		if !IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tt.name, err)
			continue
		}
		if res.Found() {
			t.Errorf("%s: validation failure must not carry results", tt.name)
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.field)
		}
	}
}

func TestRecommendLimitAndDeterminism(t *testing.T) {
	var recs []models.Restaurant
	for i := 0; i < 25; i++ {
		recs = append(recs, models.Restaurant{
			Name:        fmt.Sprintf("r%02d", i),
			CountryCode: 1,
			City:        "Delhi",
			Cuisines:    "Chinese",
			CostForTwo:  float64(100 + (i%5)*50),
			Rating:      float64(i%10) / 2,
		})
	}
	e := New(dataset.New(recs))
	c := Criteria{CountryCode: intPtr(1), City: "Delhi", Cuisine: "chin", Budget: floatPtr(200)}

	first, err := e.Recommend(c, Guided)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(first.Restaurants) != DefaultLimit {
		t.Fatalf("len: got %d, want %d", len(first.Restaurants), DefaultLimit)
	}
	second, _ := e.Recommend(c, Guided)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical calls returned different results")
	}

	small, _ := New(dataset.New(recs), WithLimit(3)).Recommend(c, Guided)
	if len(small.Restaurants) != 3 {
		t.Errorf("WithLimit(3): got %d", len(small.Restaurants))
	}

	for _, n := range []int{11, 25, 0, -1} {
		res, _ := New(dataset.New(recs), WithLimit(n)).Recommend(c, Guided)
		if len(res.Restaurants) != DefaultLimit {
			t.Errorf("WithLimit(%d): got %d, want %d", n, len(res.Restaurants), DefaultLimit)
		}
	}
}

func TestRecommendResultsSatisfyCriteria(t *testing.T) {
	e := New(sampleDataset())
	criteria := []Criteria{
		{City: "del"},
		{City: "Delhi", Cuisine: "chinese"},
		{CountryCode: intPtr(216)},
		{Country: "India", Budget: floatPtr(450)},
		{Cuisine: "thai", Budget: floatPtr(1000)},
	}
	for _, c := range criteria {
		res, err := e.Recommend(c, Search)
		if err != nil {
			t.Fatalf("%+v: %v", c, err)
		}
		if len(res.Restaurants) > DefaultLimit {
			t.Errorf("%+v: too many results", c)
		}
		for _, r := range res.Restaurants {
			if c.CountryCode != nil && r.CountryCode != *c.CountryCode {
				t.Errorf("%s: country code %d", r.Name, r.CountryCode)
			}
			if c.Country != "" && r.Country != c.Country {
				t.Errorf("%s: country %q", r.Name, r.Country)
			}
			if c.City != "" && !strings.Contains(strings.ToLower(r.City), strings.ToLower(c.City)) {
				t.Errorf("%s: city %q", r.Name, r.City)
			}
			if c.Cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisines), strings.ToLower(c.Cuisine)) {
				t.Errorf("%s: cuisines %q", r.Name, r.Cuisines)
			}
			if c.Budget != nil && r.CostForTwo > *c.Budget {
				t.Errorf("%s: cost %v", r.Name, r.CostForTwo)
			}
		}
	}
}

func TestModeByName(t *testing.T) {
	if m, ok := ModeByName(" Guided "); !ok || m.Name != "guided" {
		t.Errorf("guided: got %+v %v", m, ok)
	}
	if _, ok := ModeByName("random"); ok {
		t.Error("unknown mode should not resolve")
	}
}
