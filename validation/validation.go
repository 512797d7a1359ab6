// Package validation turns raw request bodies into records ready for insertion.
//
// Validation is presence based: every field tagged `validate:"required"` must be
// present and non-zero. Failures always report the full list of required fields
// for the resource, so clients see the same shape no matter which field was missing.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/coreybb/shiftmate/models"
	"github.com/go-playground/validator/v10"
)

const (
	MsgMissingFields  = "Missing required fields"
	MsgInvalidPayload = "Invalid request payload"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Error is returned when a payload cannot be accepted.
type Error struct {
	Message  string
	Required []string // every required field of the resource, in declaration order
	Missing  []string // the fields that failed, empty when the body could not be decoded
	cause    error
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return e.Message + ": " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validator checks a raw JSON body and returns the normalized record.
type Validator func(body []byte) (models.Record, error)

// For builds the Validator for payload type T.
func For[T models.Payload]() Validator {
	required := RequiredFields[T]()

	return func(body []byte) (models.Record, error) {
		if len(bytes.TrimSpace(body)) == 0 {
			body = []byte("{}")
		}

		var payload T
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &Error{Message: MsgInvalidPayload, Required: required, cause: err}
		}

		if err := validate.Struct(payload); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return nil, err
			}
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, fe.Field())
			}
			return nil, &Error{Message: MsgMissingFields, Required: required, Missing: missing, cause: err}
		}

		return payload.Record(), nil
	}
}

// RequiredFields lists the JSON names of T's required fields in declaration order.
func RequiredFields[T any]() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !isRequired(f.Tag.Get("validate")) {
			continue
		}
		fields = append(fields, jsonName(f))
	}
	return fields
}

func isRequired(tag string) bool {
	for _, rule := range strings.Split(tag, ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

var (
	Shift     = For[models.ShiftRequest]()
	Mood      = For[models.MoodRequest]()
	Hydration = For[models.HydrationRequest]()
)
