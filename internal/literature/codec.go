package literature

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"litshelf/internal/attribute"
	"litshelf/internal/validate"
)

var (
	// ErrUnknownType is returned for a missing or unrecognised "type" tag.
	ErrUnknownType = errors.New("unknown literature type")
	// ErrTypeChanged is returned when a save would change the type of an existing record.
	ErrTypeChanged = errors.New("literature type cannot change")
)

func unknownType(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: missing type", ErrUnknownType)
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

type envelope struct {
	Type *string `json:"type"`
}

// Decode reads a stored record, dispatching on its "type" tag. Unknown fields
// are ignored.
func Decode(data []byte) (Literature, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	tag := ""
	if env.Type != nil {
		tag = *env.Type
	}
	lit, err := New(Type(tag))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, lit); err != nil {
		return nil, err
	}
	return lit, nil
}

// Parse decodes untrusted input and validates it against now. Every problem
// found is reported in a single *validate.Error, including fields whose JSON
// type is wrong.
func Parse(data []byte, now time.Time) (Literature, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, validate.Field("type", "must be a string")
		}
		return nil, validate.Field("", "malformed JSON: "+err.Error())
	}
	if env.Type == nil || !Type(*env.Type).Valid() {
		return nil, validate.Field("type", "must be one of: "+typeNames())
	}

	lit, _ := New(Type(*env.Type))
	var mistyped *validate.FieldError
	if err := json.Unmarshal(data, lit); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, validate.Field("", "malformed JSON: "+err.Error())
		}
		mistyped = &validate.FieldError{Field: jsonPath(typeErr.Field), Message: expected(typeErr.Type)}
	}

	if mistyped == nil {
		lit.Meta().Attributes = attribute.Normalize(lit.Meta().Attributes)
	}
	err := Validate(lit, now)
	if err == nil && mistyped == nil {
		return lit, nil
	}
	var ve *validate.Error
	if err != nil && !errors.As(err, &ve) {
		return nil, err
	}
	if mistyped == nil {
		return nil, err
	}
	// The zero value left behind by a mistyped field fails its own rules too;
	// report that field once.
	fields := []validate.FieldError{*mistyped}
	if ve != nil {
		for _, f := range ve.Fields {
			if f.Field != mistyped.Field {
				fields = append(fields, f)
			}
		}
	}
	return nil, validate.New(fields...)
}

// jsonPath drops the embedded struct names newer decoders include in
// UnmarshalTypeError.Field, leaving the JSON key path.
func jsonPath(field string) string {
	parts := strings.Split(field, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "Common" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

func expected(t reflect.Type) string {
	if t == nil {
		return "has the wrong type"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return expected(t.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be true or false"
	case reflect.Slice, reflect.Array:
		return "must be a list"
	default:
		return "must be an object"
	}
}
