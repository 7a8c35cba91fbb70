package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// FieldError names the offending field by its JSON path, e.g. experiences[0].company.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Validator struct {
	v *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Normalizer is implemented by wrapper types whose tags should apply to the
// value they finally store rather than to the wrapper struct.
type Normalizer interface {
	ValidationValue() interface{}
}

// RegisterNormalizers enables tags on fields of the given types. Call it
// before the first Struct.
func (v *Validator) RegisterNormalizers(types ...Normalizer) {
	if len(types) == 0 {
		return
	}
	samples := make([]interface{}, len(types))
	for i, t := range types {
		samples[i] = t
	}
	v.v.RegisterCustomTypeFunc(normalized, samples...)
}

func normalized(field reflect.Value) interface{} {
	if n, ok := field.Interface().(Normalizer); ok {
		return n.ValidationValue()
	}
	return nil
}

// Struct validates s and flattens any failures. A nil slice means s is valid.
func (v *Validator) Struct(s interface{}) ([]FieldError, error) {
	err := v.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return out, nil
}

// fieldPath drops the root struct name from a namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "uuid4", "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}
