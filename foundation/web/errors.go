package web

import (
	"reflect"
	"strings"
)

// FieldError is used to indicate an error with a specific request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is used to pass an error during the request through the
// application with web specific context.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorResponse is the form used for API responses from failures in the API.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
	Status bool         `json:"status"`
}

// Required reports the fields of dest that are unset. Names may be passed
// one per argument or comma separated. dest must be a pointer to a struct.
func Required(dest interface{}, names ...string) []FieldError {
	v := reflect.Indirect(reflect.ValueOf(dest))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldError
	for _, list := range names {
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			sf, ok := v.Type().FieldByName(name)
			if !ok {
				continue
			}

			if v.FieldByIndex(sf.Index).IsZero() {
				fields = append(fields, FieldError{Field: jsonName(sf), Error: "required"})
			}
		}
	}

	return fields
}

func jsonName(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return sf.Name
	}

	return tag
}
