package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *validator.Validate
}

var _ echo.Validator = (*requestValidator)(nil)

// newRequestValidator reports fields by their JSON names.
func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

// fieldErrors maps each failing field to the rule it broke.
func fieldErrors(validationErrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[fe.Field()] = rule
	}
	return out
}

// bind decodes and validates a request body.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
