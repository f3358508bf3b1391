package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// requestValidator runs struct tags through go-playground/validator and
// reports failures under the JSON names clients send.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns a validator for echo.Echo.Validator.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &requestValidator{v: v}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Validate returns a *domain.ValidationError listing every failed field.
func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, 0, len(fields))
	for _, fe := range fields {
		msgs = append(msgs, describe(fe))
	}
	return domain.Invalid(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
