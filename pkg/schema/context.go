package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var contextValidate *validator.Validate

func init() {
	contextValidate = validator.New()
	// Report failures with the document field names, not the Go ones.
	contextValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// ValidateContext checks every enum field of c against its allowed values.
func ValidateContext(c domain.CallContext) error {
	err := contextValidate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reason := fe.Tag()
		if fe.Tag() == "oneof" {
			reason = "must be one of: " + fe.Param()
		}
		errs = append(errs, &ValidationError{Path: fe.Field(), Reason: reason, Value: fe.Value()})
	}
	return &AggregateError{Errors: errs}
}

// ApplyPatch overwrites the fields named in patch on a copy of base.
// Unknown fields and mistyped values are rejected, and a null value resets
// the field to its zero value. base is returned unchanged on error.
func ApplyPatch(base domain.CallContext, patch map[string]any) (domain.CallContext, error) {
	if len(patch) == 0 {
		return base, nil
	}

	next := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &next,
		ErrorUnused: true,
		ZeroFields:  true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(patch); err != nil {
		return base, fmt.Errorf("decode context patch: %w", err)
	}
	if err := ValidateContext(next); err != nil {
		return base, err
	}
	return next, nil
}

// ContextFields returns the names of all context fields.
func ContextFields() []string {
	t := reflect.TypeOf(domain.CallContext{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		names = append(names, t.Field(i).Tag.Get("mapstructure"))
	}
	return names
}

// Preserve builds a default context carrying over the named fields of src.
func Preserve(src domain.CallContext, fields []string) (domain.CallContext, error) {
	fresh := domain.NewCallContext()
	if len(fields) == 0 {
		return fresh, nil
	}

	var all map[string]any
	if err := mapstructure.Decode(src, &all); err != nil {
		return fresh, fmt.Errorf("encode context: %w", err)
	}

	kept := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := all[f]
		if !ok {
			return fresh, &ValidationError{Path: f, Reason: "unknown context field"}
		}
		kept[f] = v
	}
	return ApplyPatch(fresh, kept)
}

// ContextEnv exposes the context to rule expressions, keyed by document
// field names. Enum fields are plain strings and flags are plain bools.
func ContextEnv(c domain.CallContext) map[string]any {
	env := make(map[string]any, len(ContextFields()))
	if err := mapstructure.Decode(c, &env); err != nil {
		// Unreachable: CallContext holds only strings and bools.
		panic(fmt.Sprintf("encode context: %v", err))
	}
	for k, v := range env {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String:
			env[k] = rv.String()
		case reflect.Bool:
			env[k] = rv.Bool()
		}
	}
	return env
}
