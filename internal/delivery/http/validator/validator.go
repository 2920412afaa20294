// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"reflect"
	"strings"

	domainerrors "stencil/internal/domain/errors"
	"stencil/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs using struct tags.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates a request validator with JSON field names in error details.
func New() *RequestValidator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator. Tag violations are translated into the
// unified validation error so the error handler can render field details.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describeFieldError(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

func describeFieldError(fe playground.FieldError) string {
	var b strings.Builder
	b.WriteString(fe.Field())
	b.WriteString(" failed on '")
	b.WriteString(fe.Tag())
	b.WriteString("'")
	if fe.Param() != "" {
		b.WriteString("=")
		b.WriteString(fe.Param())
	}

	return b.String()
}
