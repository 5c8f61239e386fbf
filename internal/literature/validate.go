package literature

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"litshelf/internal/attribute"
	"litshelf/internal/validate"
)

// MinYear is the earliest accepted publication year.
const MinYear = 1000

// MaxYear returns the latest accepted publication year relative to now.
func MaxYear(now time.Time) int {
	return now.Year() + 10
}

// Validate checks the common fields and the variant rules of lit and reports
// every violation at once as a *validate.Error.
func Validate(lit Literature, now time.Time) error {
	if lit == nil {
		return validate.Field("type", "must be one of: "+typeNames())
	}
	return validate.Join(
		validateCommon(lit.Meta(), now),
		lit.validateVariant(),
	)
}

func validateCommon(c *Common, now time.Time) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validate.NotBlank),
		validation.Field(&c.Year,
			validation.Required,
			validation.Min(MinYear),
			validation.Max(MaxYear(now)),
		),
		validation.Field(&c.Authors,
			validation.Required.Error("at least one author is required"),
			validation.Each(validate.NotBlank),
		),
		validation.Field(&c.Attributes, attribute.UniqueApplications),
	)
}

func (v *JournalArticle) validateVariant() error { return nil }

func (v *ConferencePaper) validateVariant() error { return nil }

func (v *Book) validateVariant() error {
	return validation.ValidateStruct(v,
		validation.Field(&v.TotalPages, validation.By(positive)),
	)
}

func (v *BookChapter) validateVariant() error {
	return validation.ValidateStruct(v,
		validation.Field(&v.Editors, validation.Each(validate.NotBlank)),
	)
}

func (v *Thesis) validateVariant() error {
	return validation.ValidateStruct(v,
		validation.Field(&v.ThesisType, validation.In(ThesisDoctoral, ThesisMasters, ThesisBachelors)),
	)
}

func (v *Other) validateVariant() error { return nil }

func positive(value any) error {
	p, _ := value.(*int)
	if p != nil && *p <= 0 {
		return errors.New("must be a positive integer")
	}
	return nil
}
