package literature

import (
	"reflect"
	"strings"
)

// FieldKind is the JSON shape of a variant field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldList
)

// VariantField names one type-specific field by its JSON key.
type VariantField struct {
	Name string
	Kind FieldKind
}

// VariantFields lists the type-specific fields of t in declaration order.
// Fields shared by every type are not included.
func VariantFields(t Type) ([]VariantField, error) {
	lit, err := New(t)
	if err != nil {
		return nil, err
	}
	rt := reflect.TypeOf(lit).Elem()
	fields := make([]VariantField, 0, rt.NumField())
	for i := range rt.NumField() {
		f := rt.Field(i)
		if f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		kind := FieldText
		switch ft.Kind() {
		case reflect.Int, reflect.Int64:
			kind = FieldNumber
		case reflect.Slice:
			kind = FieldList
		}
		fields = append(fields, VariantField{Name: name, Kind: kind})
	}
	return fields, nil
}
