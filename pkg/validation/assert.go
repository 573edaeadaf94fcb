// Package validation holds the assertions shared by every payload builder and
// the two error kinds they raise.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validatorengine "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var engine = newEngine()

func newEngine() *validatorengine.Validate {
	ve := validatorengine.New()
	if err := ve.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// report wire names instead of Go field names
	ve.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return ve
}

// NotNil fails when v is nil or a nil pointer.
func NotNil(v any, field string) error {
	if v == nil {
		return Invalid(field, "must not be nil")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return Invalid(field, "must not be nil")
		}
	}
	return nil
}

// NotBlank fails when value is empty or only whitespace.
func NotBlank(value, field string) error {
	if engine.Var(value, "notblank") != nil {
		return Invalid(field, "must not be blank")
	}
	return nil
}

// OneOf fails when value is not one of allowed.
func OneOf[T ~string](value T, field string, allowed ...T) error {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	rule := "oneof=" + strings.Join(names, " ")
	if len(allowed) == 0 || engine.Var(string(value), rule) != nil {
		return Invalid(field, fmt.Sprintf("must be one of [%s], got %q", strings.Join(names, " "), string(value)))
	}
	return nil
}

// E164 fails when value is not an E.164 phone number such as +15105551234.
func E164(value, field string) error {
	if engine.Var(value, "e164") != nil {
		return Invalid(field, "must be an E.164 number with a leading + and country code")
	}
	return nil
}

// NotEmpty fails when items has no entries.
func NotEmpty[T any](items []T, field string) error {
	if len(items) == 0 {
		return Invalid(field, "must not be empty")
	}
	return nil
}

// LengthNotGreaterThan fails when value holds more than limit characters.
// Characters are Unicode code points.
func LengthNotGreaterThan(value string, limit int, field string) error {
	if engine.Var(value, fmt.Sprintf("max=%d", limit)) != nil {
		return Invalid(field, fmt.Sprintf("must not exceed %d characters", limit))
	}
	return nil
}

// SizeNotGreaterThan fails with a ValidationError when items has more than limit entries.
func SizeNotGreaterThan[T any](items []T, limit int, field string) error {
	if !sizeWithin(items, fmt.Sprintf("max=%d", limit)) {
		return Invalid(field, fmt.Sprintf("must not contain more than %d entries", limit))
	}
	return nil
}

// SizeNotLessThan fails with a ValidationError when items has fewer than limit entries.
func SizeNotLessThan[T any](items []T, limit int, field string) error {
	if !sizeWithin(items, fmt.Sprintf("min=%d", limit)) {
		return Invalid(field, fmt.Sprintf("must contain at least %d entries", limit))
	}
	return nil
}

// SizeNotGreaterThanState is SizeNotGreaterThan raising a StateError.
func SizeNotGreaterThanState[T any](items []T, limit int, field string) error {
	if !sizeWithin(items, fmt.Sprintf("max=%d", limit)) {
		return State(field, fmt.Sprintf("must not contain more than %d entries", limit))
	}
	return nil
}

// SizeNotLessThanState is SizeNotLessThan raising a StateError.
func SizeNotLessThanState[T any](items []T, limit int, field string) error {
	if !sizeWithin(items, fmt.Sprintf("min=%d", limit)) {
		return State(field, fmt.Sprintf("must contain at least %d entries", limit))
	}
	return nil
}

func sizeWithin[T any](items []T, rule string) bool {
	if items == nil {
		items = []T{}
	}
	return engine.Var(items, rule) == nil
}

// Struct runs the `validate` tags of a decoded wire struct and folds every
// failed rule into ValidationErrors keyed by the wire path of the field.
func Struct(data any) error {
	err := engine.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validatorengine.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, Invalid(wirePath(fe.Namespace()), ruleReason(fe)))
	}
	return errors.Join(errs...)
}

// wirePath drops the root type name from a validator namespace.
func wirePath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func ruleReason(fe validatorengine.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without", "required_with":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not contain more than %s entries", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must contain at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
