package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	commonTags := []string{
		"json",
		"param",
		"query",
		"header",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	// numbers validate as their value; an absent number is the zero value
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		n, ok := v.Interface().(models.Number)
		if !ok || !n.Present() {
			return nil
		}
		return n.Float()
	}, models.Number{})

	return &Validator{
		validate: validate,
	}
}

// Validate checks i and reports the first failing field as a
// models.ValidationError.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fieldError(verrs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return models.MissingField(field)
	case "email":
		return models.InvalidField(field, "must be a valid email address")
	case "oneof":
		return models.InvalidField(field, "must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return models.InvalidField(field, "must be a date formatted as %s", fe.Param())
	case "gte", "min":
		return models.InvalidField(field, "must be at least %s", fe.Param())
	}
	return models.InvalidField(field, "failed %q validation", fe.Tag())
}
