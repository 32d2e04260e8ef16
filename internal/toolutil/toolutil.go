// Package toolutil provides shared input validation for the MCP tools.
package toolutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_placement/internal/engine/jobs"
	"github.com/anatolykoptev/go_placement/internal/engine/placement"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
		RegisterValidators(validate)
	})
	return validate
}

// jsonFieldName reports fields by their JSON name so errors match tool input.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// RegisterValidators registers the domain tags on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("experience_level", ExperienceLevel)
	_ = v.RegisterValidation("work_mode", WorkMode)
	_ = v.RegisterValidation("job_status", JobStatus)
	_ = v.RegisterValidation("confidence", Confidence)
}

// ExperienceLevel accepts one of the fixed experience labels. Empty is allowed.
func ExperienceLevel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || jobs.ValidExperience(val)
}

// WorkMode accepts Remote, Hybrid or Onsite in any case. Empty is allowed.
func WorkMode(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := jobs.ParseMode(val)
	return ok
}

// JobStatus accepts a tracked application status.
func JobStatus(fl validator.FieldLevel) bool {
	_, err := jobs.ParseStatus(fl.Field().String())
	return err == nil
}

// Confidence accepts "know" or "practice".
func Confidence(fl validator.FieldLevel) bool {
	_, err := placement.ParseConfidence(fl.Field().String())
	return err == nil
}

// Validate checks v against its `validate` tags and flattens failures
// into one error suitable for a tool response.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "url", "http_url":
		return field + " must be a valid http(s) URL"
	case "experience_level":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(jobs.ExperienceLevels, ", "))
	case "work_mode":
		return field + " must be Remote, Hybrid or Onsite"
	case "job_status":
		return field + " must be Not Applied, Applied, Rejected or Selected"
	case "confidence":
		return field + ` must be "know" or "practice"`
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
