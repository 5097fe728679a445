package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Company is a business picked from autocomplete results.
type Company struct {
	Name    string `json:"name" validate:"required"`
	PlaceID string `json:"place_id" validate:"required"`
}

// SubmissionPayload is the body accepted by the submit endpoint and forwarded unchanged to the webhook.
// An empty companies list is allowed; a missing or null one is not.
type SubmissionPayload struct {
	Email     string    `json:"email" validate:"required,email"`
	Companies []Company `json:"companies" validate:"required,dive"`
}

// FieldError names a single rejected field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned when a payload fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s(%s)", f.Field, f.Rule))
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

// NewSubmission validates raw and returns it as a SubmissionPayload.
// Failures are reported as *ValidationError.
func NewSubmission(raw SubmissionPayload) (SubmissionPayload, error) {
	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return SubmissionPayload{}, toValidationError(verrs)
		}
		return SubmissionPayload{}, err
	}
	return raw, nil
}

func toValidationError(verrs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath strips the root struct name, e.g. "SubmissionPayload.companies[0].name" -> "companies[0].name".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
