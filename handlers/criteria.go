package handlers

import (
	"bytes"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"dinepick/recommend"
)

// ParseCriteria reads recommendation criteria from URL query parameters. The
// mode parameter overrides def. Numbers are parsed strictly: a value that is
// present but not numeric is a validation error, never a silent zero.
func ParseCriteria(query url.Values, def recommend.Mode) (recommend.Criteria, recommend.Mode, error) {
	in := criteriaInput{
		CountryCode: numberField{raw: query.Get("country_code"), set: query.Has("country_code")},
		Country:     query.Get("country"),
		City:        query.Get("city"),
		Cuisine:     query.Get("cuisine"),
		Budget:      numberField{raw: query.Get("budget"), set: query.Has("budget")},
		Mode:        query.Get("mode"),
	}
	if in.Cuisine == "" {
		in.Cuisine = query.Get("cuisines")
	}
	return in.toCriteria(def)
}

var errTrailingData = errors.New("unexpected data after JSON object")

// DecodeCriteria reads recommendation criteria from a JSON body.
func DecodeCriteria(body []byte, def recommend.Mode) (recommend.Criteria, recommend.Mode, error) {
	var in criteriaInput
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&in); err != nil {
		return recommend.Criteria{}, def, err
	}
	if dec.More() {
		return recommend.Criteria{}, def, errTrailingData
	}
	return in.toCriteria(def)
}

type criteriaInput struct {
	CountryCode numberField `json:"country_code"`
	Country     string      `json:"country"`
	City        string      `json:"city"`
	Cuisine     string      `json:"cuisine"`
	Budget      numberField `json:"budget"`
	Mode        string      `json:"mode"`
}

// numberField accepts a JSON number or a numeric string and keeps the raw
// text so that parsing errors can be reported per field.
type numberField struct {
	raw string
	set bool
}

func (n *numberField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = numberField{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unq
	}
	*n = numberField{raw: s, set: true}
	return nil
}

func (in criteriaInput) toCriteria(def recommend.Mode) (recommend.Criteria, recommend.Mode, error) {
	var (
		c      recommend.Criteria
		fields []recommend.FieldError
		mode   = def
	)

	if m := strings.TrimSpace(in.Mode); m != "" {
		var ok bool
		if mode, ok = recommend.ModeByName(m); !ok {
			fields = append(fields, recommend.FieldError{Field: "mode", Message: "must be guided or search"})
			mode = def
		}
	}

	if in.CountryCode.set && strings.TrimSpace(in.CountryCode.raw) != "" {
		code, err := strconv.Atoi(strings.TrimSpace(in.CountryCode.raw))
		if err != nil {
			fields = append(fields, recommend.FieldError{Field: "country_code", Message: "must be an integer"})
		} else {
			c.CountryCode = &code
		}
	}

	if in.Budget.set && strings.TrimSpace(in.Budget.raw) != "" {
		b, err := strconv.ParseFloat(strings.TrimSpace(in.Budget.raw), 64)
		if err != nil || math.IsNaN(b) || math.IsInf(b, 0) {
			fields = append(fields, recommend.FieldError{Field: "budget", Message: "must be a number"})
		} else {
			c.Budget = &b
		}
	}

	c.Country = strings.TrimSpace(in.Country)
	c.City = strings.TrimSpace(in.City)
	c.Cuisine = strings.TrimSpace(in.Cuisine)

	if len(fields) > 0 {
		return c, mode, &recommend.ValidationError{Fields: fields}
	}
	return c, mode, nil
}
