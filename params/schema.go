package params

import (
	"errors"
	"fmt"
	"slices"
)

// Field binds one wire key to a location in the model T together with its
// conversions in both directions.
type Field[T any] struct {
	name     string
	required bool
	toWire   func(*T) (any, bool)
	fromWire func(*T, any) error
}

// Name returns the wire key of the field
func (f Field[T]) Name() string {
	return f.name
}

// Schema is the conversion table of a parameter model.
type Schema[T any] struct {
	fields   []Field[T]
	index    map[string]int
	validate func(*T) error
}

// NewSchema builds a schema from its fields. Field names must be unique.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := s.index[f.name]; dup {
			panic(fmt.Sprintf("params: duplicate field %q", f.name))
		}
		s.index[f.name] = i
	}
	return s
}

// WithValidator sets a model-level check run by FromParams and Validate.
func (s *Schema[T]) WithValidator(fn func(*T) error) *Schema[T] {
	s.validate = fn
	return s
}

// Fields returns the declared field names in declaration order
func (s *Schema[T]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Has reports whether key is a declared field
func (s *Schema[T]) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Validate runs the model-level validator, if any.
func (s *Schema[T]) Validate(model *T) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(model)
}

// ToParams converts every non-absent field of model to its wire value.
func (s *Schema[T]) ToParams(model *T) Values {
	values := make(Values, len(s.fields))
	for _, f := range s.fields {
		if v, ok := f.toWire(model); ok {
			values[f.name] = v
		}
	}
	return values
}

// FromParams builds a model from wire values. Unknown keys fail with
// *InvalidKeyError; every other failure is a *ConversionError.
func (s *Schema[T]) FromParams(data Values) (*T, error) {
	// Keys are checked in sorted order so the reported key is deterministic.
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !s.Has(key) {
			return nil, &InvalidKeyError{Key: key}
		}
	}

	model := new(T)
	for _, f := range s.fields {
		value, ok := data[f.name]
		if !ok || value == nil {
			if f.required {
				return nil, &ConversionError{Field: f.name, Err: ErrMissingField}
			}
			continue
		}
		if err := f.fromWire(model, value); err != nil {
			return nil, &ConversionError{Field: f.name, Err: err}
		}
	}

	if err := s.Validate(model); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, &ConversionError{Field: verr.Field, Err: err}
		}
		return nil, &ConversionError{Err: err}
	}

	return model, nil
}

// String declares a required string field
func String[T any](name string, ref func(*T) *string) Field[T] {
	return Field[T]{
		name:     name,
		required: true,
		toWire: func(m *T) (any, bool) {
			return *ref(m), true
		},
		fromWire: func(m *T, v any) error {
			s, err := toString(v)
			if err != nil {
				return err
			}
			*ref(m) = s
			return nil
		},
	}
}

// OptionalString declares a string field that is absent when nil
func OptionalString[T any](name string, ref func(*T) **string) Field[T] {
	return Field[T]{
		name: name,
		toWire: func(m *T) (any, bool) {
			p := *ref(m)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		fromWire: func(m *T, v any) error {
			s, err := toString(v)
			if err != nil {
				return err
			}
			*ref(m) = &s
			return nil
		},
	}
}

// Int declares a required integer field
func Int[T any](name string, ref func(*T) *int) Field[T] {
	return Field[T]{
		name:     name,
		required: true,
		toWire: func(m *T) (any, bool) {
			return *ref(m), true
		},
		fromWire: func(m *T, v any) error {
			n, err := toInt(v)
			if err != nil {
				return err
			}
			*ref(m) = n
			return nil
		},
	}
}

// OptionalInt declares an integer field that is absent when nil
func OptionalInt[T any](name string, ref func(*T) **int) Field[T] {
	return Field[T]{
		name: name,
		toWire: func(m *T) (any, bool) {
			p := *ref(m)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		fromWire: func(m *T, v any) error {
			n, err := toInt(v)
			if err != nil {
				return err
			}
			*ref(m) = &n
			return nil
		},
	}
}

// StringList declares a list of strings carried on the wire as one
// comma-joined string. A nil list is absent.
func StringList[T any](name string, ref func(*T) *[]string) Field[T] {
	return Field[T]{
		name: name,
		toWire: func(m *T) (any, bool) {
			list := *ref(m)
			if list == nil {
				return nil, false
			}
			return joinList(list), true
		},
		fromWire: func(m *T, v any) error {
			list, err := splitList(v)
			if err != nil {
				return err
			}
			*ref(m) = list
			return nil
		},
	}
}

// OptionalChoice declares a string-kinded field restricted to allowed values.
func OptionalChoice[T any, S ~string](name string, ref func(*T) **S, allowed ...S) Field[T] {
	return Field[T]{
		name: name,
		toWire: func(m *T) (any, bool) {
			p := *ref(m)
			if p == nil {
				return nil, false
			}
			return string(*p), true
		},
		fromWire: func(m *T, v any) error {
			s, err := toString(v)
			if err != nil {
				return err
			}
			choice := S(s)
			if !slices.Contains(allowed, choice) {
				return &ValidationError{Field: name, Reason: fmt.Sprintf("%q is not one of %v", s, allowed)}
			}
			*ref(m) = &choice
			return nil
		},
	}
}
