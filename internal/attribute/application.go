package attribute

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"litshelf/internal/validate"
)

// Application attaches values of one schema to a record.
type Application struct {
	AttributeID string   `json:"attributeId"`
	Values      []string `json:"values"`
	Note        string   `json:"note,omitempty"`
}

func (a Application) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AttributeID, validate.NotBlank),
		validation.Field(&a.Values, validation.Required, validation.Each(validate.NotBlank)),
	)
}

// UniqueApplications is a rule rejecting two applications for the same schema.
var UniqueApplications = validation.By(func(value any) error {
	apps, _ := value.([]Application)
	seen := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		if _, dup := seen[app.AttributeID]; dup {
			return fmt.Errorf("duplicate application of attribute %q", app.AttributeID)
		}
		seen[app.AttributeID] = struct{}{}
	}
	return nil
})

// Find returns the application for attributeID.
func Find(apps []Application, attributeID string) (Application, bool) {
	i := index(apps, attributeID)
	if i < 0 {
		return Application{}, false
	}
	return apps[i], true
}

// Apply adds value to the application for attributeID, creating it if needed.
// Values are trimmed; blank values and values already present leave the
// applications unchanged. The input slice is not modified.
func Apply(apps []Application, attributeID, value string) []Application {
	value = strings.TrimSpace(value)
	out := clone(apps)
	if value == "" {
		return out
	}
	i := index(out, attributeID)
	if i < 0 {
		return append(out, Application{AttributeID: attributeID, Values: []string{value}})
	}
	if !slices.Contains(out[i].Values, value) {
		out[i].Values = append(out[i].Values, value)
	}
	return out
}

// Remove drops value from the application for attributeID. An application left
// without values is removed entirely.
func Remove(apps []Application, attributeID, value string) []Application {
	value = strings.TrimSpace(value)
	out := clone(apps)
	i := index(out, attributeID)
	if i < 0 {
		return out
	}
	out[i].Values = slices.DeleteFunc(out[i].Values, func(v string) bool { return v == value })
	if len(out[i].Values) == 0 {
		out = slices.Delete(out, i, i+1)
	}
	return out
}

// SetNote replaces the note on the application for attributeID. Missing
// applications are left alone.
func SetNote(apps []Application, attributeID, note string) []Application {
	out := clone(apps)
	if i := index(out, attributeID); i >= 0 {
		out[i].Note = note
	}
	return out
}

// Normalize trims values, removes blanks and repeats, and drops empty
// applications. Applications for the same schema are merged in order.
func Normalize(apps []Application) []Application {
	var out []Application
	for _, app := range apps {
		id := strings.TrimSpace(app.AttributeID)
		if id == "" {
			continue
		}
		for _, v := range app.Values {
			out = Apply(out, id, v)
		}
		if note := app.Note; note != "" {
			if i := index(out, id); i >= 0 && out[i].Note == "" {
				out[i].Note = note
			}
		}
	}
	return out
}

func index(apps []Application, attributeID string) int {
	return slices.IndexFunc(apps, func(a Application) bool { return a.AttributeID == attributeID })
}

func clone(apps []Application) []Application {
	if apps == nil {
		return nil
	}
	out := make([]Application, len(apps))
	for i, app := range apps {
		out[i] = app
		out[i].Values = slices.Clone(app.Values)
	}
	return out
}
