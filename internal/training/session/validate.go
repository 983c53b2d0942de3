package session

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, they are what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct wraps the first failed rule into ErrInvalidEntry.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidEntry, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidEntry, fe.Field())
	case "datetime":
		return fmt.Errorf("%w: %s [%v] is not YYYY-MM-DD", ErrInvalidEntry, fe.Field(), fe.Value())
	default:
		return fmt.Errorf("%w: %s [%v] fails %s=%s", ErrInvalidEntry, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
}
