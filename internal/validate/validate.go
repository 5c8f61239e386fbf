// Package validate carries field-level validation failures.
//
// Validators in the domain packages describe rules with ozzo-validation and
// hand the result to [FromOzzo], which flattens nested rule errors into an
// ordered list of field-path/message pairs. Callers receive a single [*Error]
// holding every violation and test for it with errors.Is(err, ErrInvalid).
package validate

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalid matches any [*Error] via errors.Is.
var ErrInvalid = errors.New("validation failed")

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON path of the offending value, e.g. "authors[1]".
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Error collects all violations found for one value.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalid.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ErrInvalid as a match.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Has reports whether a failure was recorded for field.
func (e *Error) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// NotBlank rejects strings that are empty after trimming whitespace.
var NotBlank = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
})

// New returns an *Error for the given failures, or nil when there are none.
func New(fields ...FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

// Field is shorthand for a single-failure error.
func Field(field, message string) error {
	return New(FieldError{Field: field, Message: message})
}

// FromOzzo converts an ozzo-validation result into an *Error. Internal rule
// errors and anything that is not a validation result pass through unchanged.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var obj validation.Error
		if errors.As(err, &obj) {
			return Field("", obj.Error())
		}
		return err
	}
	var fields []FieldError
	if ierr := flatten(&fields, "", errs); ierr != nil {
		return ierr
	}
	return New(fields...)
}

// Join merges the failures of several validation results. The first error that
// is not a validation failure is returned as-is.
func Join(errs ...error) error {
	var fields []FieldError
	for _, err := range errs {
		if err == nil {
			continue
		}
		converted := FromOzzo(err)
		var ve *Error
		if !errors.As(converted, &ve) {
			return converted
		}
		fields = append(fields, ve.Fields...)
	}
	return New(fields...)
}

// Prefix nests every field of a validation failure under path.
func Prefix(path string, err error) error {
	if err == nil {
		return nil
	}
	converted := FromOzzo(err)
	var ve *Error
	if !errors.As(converted, &ve) {
		return converted
	}
	out := make([]FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, FieldError{Field: joinPath(path, f.Field), Message: f.Message})
	}
	return New(out...)
}

func flatten(dst *[]FieldError, prefix string, errs validation.Errors) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	for _, key := range keys {
		err := errs[key]
		if err == nil {
			continue
		}
		path := joinPath(prefix, key)
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			if ierr := flatten(dst, path, nested); ierr != nil {
				return ierr
			}
			continue
		}
		var ve *Error
		if errors.As(err, &ve) {
			for _, f := range ve.Fields {
				*dst = append(*dst, FieldError{Field: joinPath(path, f.Field), Message: f.Message})
			}
			continue
		}
		*dst = append(*dst, FieldError{Field: path, Message: err.Error()})
	}
	return nil
}

// joinPath renders numeric segments as indexes: ("authors", "2") -> "authors[2]".
func joinPath(prefix, key string) string {
	if key == "" {
		return prefix
	}
	if strings.HasPrefix(key, "[") {
		return prefix + key
	}
	if _, err := strconv.Atoi(key); err == nil {
		return prefix + "[" + key + "]"
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// compareKeys orders numeric keys numerically and everything else lexically.
func compareKeys(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai - bi
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
