package recommend

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Criteria narrows the dataset. A nil pointer or an empty string means the
// dimension is unconstrained.
type Criteria struct {
	CountryCode *int     `json:"country_code,omitempty" validate:"omitempty,gt=0"`
	Country     string   `json:"country,omitempty" validate:"max=100"`
	City        string   `json:"city,omitempty" validate:"max=100"`
	Cuisine     string   `json:"cuisine,omitempty" validate:"max=100"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gte=0,finite"`
}

// HasCountry reports whether a country constraint is present.
func (c Criteria) HasCountry() bool {
	return c.CountryCode != nil || strings.TrimSpace(c.Country) != ""
}

// FieldError is one rejected criteria field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when criteria are rejected before filtering.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid criteria"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
	})
	return validate
}

// Validate checks c against the requirements of mode.
func (c Criteria) Validate(mode Mode) error {
	var fields []FieldError

	if err := getValidator().Struct(c); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return fmt.Errorf("validate criteria: %w", err)
		}
		for _, fe := range ves {
			fields = append(fields, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
	}

	if mode.RequireLocation {
		if !c.HasCountry() {
			fields = append(fields, FieldError{Field: "country", Message: "is required"})
		}
		if strings.TrimSpace(c.City) == "" {
			fields = append(fields, FieldError{Field: "city", Message: "is required"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "finite":
		return "must be a finite number"
	}
	return "failed " + fe.Tag() + " check"
}
