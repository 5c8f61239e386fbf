package attribute

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"litshelf/internal/validate"
)

var (
	// ErrSchemaNotFound is returned when an operation needs a schema that does not exist.
	ErrSchemaNotFound = errors.New("attribute schema not found")
	// ErrValueNotAllowed is returned when a value outside the predefined list is
	// applied to a schema that does not accept free text.
	ErrValueNotAllowed = errors.New("value not allowed")
)

// Value is one predefined value of a schema. ID is scoped to the schema.
type Value struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

func (v Value) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.ID, validate.NotBlank),
		validation.Field(&v.Value, validate.NotBlank),
	)
}

// Schema is a persisted attribute category.
type Schema struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	PredefinedValues []Value `json:"predefinedValues,omitempty"`
	AllowFreeText    bool    `json:"allowFreeText"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

func (s *Schema) RecordID() string             { return s.ID }
func (s *Schema) SetRecordID(id string)        { s.ID = id }
func (s *Schema) Timestamps() (string, string) { return s.CreatedAt, s.UpdatedAt }
func (s *Schema) SetTimestamps(created, updated string) {
	s.CreatedAt, s.UpdatedAt = created, updated
}

// Decode parses a stored schema.
func Decode(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the schema and reports every violation at once.
func (s *Schema) Validate() error {
	return validate.FromOzzo(validation.ValidateStruct(s,
		validation.Field(&s.Name, validate.NotBlank),
		validation.Field(&s.PredefinedValues, validation.By(uniqueValues)),
	))
}

func uniqueValues(value any) error {
	values, _ := value.([]Value)
	ids := make(map[string]struct{}, len(values))
	texts := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := ids[v.ID]; dup && v.ID != "" {
			return fmt.Errorf("duplicate value id %q", v.ID)
		}
		ids[v.ID] = struct{}{}
		text := strings.TrimSpace(v.Value)
		if _, dup := texts[text]; dup && text != "" {
			return fmt.Errorf("duplicate value %q", text)
		}
		texts[text] = struct{}{}
	}
	return nil
}

// Values returns the predefined value texts in order.
func (s *Schema) Values() []string {
	out := make([]string, 0, len(s.PredefinedValues))
	for _, v := range s.PredefinedValues {
		out = append(out, v.Value)
	}
	return out
}

// Allows reports whether value may be applied under this schema.
func (s *Schema) Allows(value string) bool {
	if s.AllowFreeText {
		return true
	}
	value = strings.TrimSpace(value)
	for _, v := range s.PredefinedValues {
		if v.Value == value {
			return true
		}
	}
	return false
}

// CheckValue returns ErrValueNotAllowed when Allows rejects value.
func (s *Schema) CheckValue(value string) error {
	if s.Allows(value) {
		return nil
	}
	return fmt.Errorf("%w: %q is not a predefined value of %q", ErrValueNotAllowed, strings.TrimSpace(value), s.Name)
}
