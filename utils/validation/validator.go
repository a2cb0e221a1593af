package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ClockRegex matches H:MM and HH:MM wall clock times
	ClockRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

	// DateLayout is the calendar date format used by the timetable
	DateLayout = "2006-01-02"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the timetable tags registered:
//
//	hhmm     - wall clock time, H:MM or HH:MM
//	yyyymmdd - calendar date, YYYY-MM-DD
func NewValidator() *Validator {
	validate := validator.New()

	// Report json names so errors line up with request bodies
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return ValidateClock(fl.Field().String())
	})
	_ = validate.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
		return ValidateDate(fl.Field().String())
	})

	return &Validator{
		validate: validate,
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", field)
			case "min":
				errors[field] = fmt.Sprintf("%s must be at least %s", field, e.Param())
			case "max":
				errors[field] = fmt.Sprintf("%s must be at most %s", field, e.Param())
			case "gte":
				errors[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
			case "lte":
				errors[field] = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
			case "oneof":
				errors[field] = fmt.Sprintf("%s must be one of: %s", field, e.Param())
			case "hhmm":
				errors[field] = fmt.Sprintf("%s must be a time in HH:MM format", field)
			case "yyyymmdd":
				errors[field] = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
			default:
				errors[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errors
}

// ValidateClock checks if s is a valid HH:MM time
func ValidateClock(s string) bool {
	return ClockRegex.MatchString(strings.TrimSpace(s))
}

// ValidateDate checks if s is a real YYYY-MM-DD calendar date
func ValidateDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
