// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package mapping binds generic decoded JSON values onto typed structs.
//
// Structs are described with `json` tags for the input key names and
// `validate` tags (go-playground/validator) for constraints. Unknown input
// keys are ignored. Every field problem is collected into one *Error.
package mapping

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// Mapper populates target, a pointer to a struct, from a generic decoded JSON
// value. It returns nil or a *Error. The content of target is unspecified
// when an error is returned.
type Mapper interface {
	Map(input any, target any) error
}

type Engine struct {
	hooks    []mapstructure.DecodeHookFunc
	validate *validator.Validate
	messages map[string]string
}

var _ Mapper = (*Engine)(nil)

type Option func(*Engine)

// WithDecodeHook adds a mapstructure decode hook, run after the built-in
// timestamp and integer hooks.
func WithDecodeHook(hook mapstructure.DecodeHookFuncType) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hook)
	}
}

// WithStringValidation registers a validate tag that checks string values.
// message is reported when the check fails.
func WithStringValidation(tag string, valid func(string) bool, message string) Option {
	return func(e *Engine) {
		err := e.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("could not register validation %q: %v", tag, err))
		}
		e.messages[tag] = message
	}
}

// New creates an Engine. It panics if a validation option cannot be registered.
func New(opts ...Option) *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	e := &Engine{
		hooks: []mapstructure.DecodeHookFunc{
			mapstructure.DecodeHookFuncType(stringToTimeHook),
			mapstructure.DecodeHookFuncType(integralNumberHook),
		},
		validate: v,
		messages: map[string]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Map(input any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(e.hooks...),
		Result:     target,
		TagName:    "json",
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return errors.Wrap(err, "could not create decoder")
	}

	var fieldErrors []FieldError
	if err := decoder.Decode(input); err != nil {
		fieldErrors = collectDecodeErrors(err, input, fieldErrors)
	}

	if isStructPointer(target) {
		if err := e.validate.Struct(target); err != nil {
			var validationErrors validator.ValidationErrors
			if !errors.As(err, &validationErrors) {
				return errors.Wrap(err, "could not validate target")
			}
			fieldErrors = e.appendValidationErrors(fieldErrors, validationErrors, input)
		}
	}

	if len(fieldErrors) > 0 {
		sortByPosition(fieldErrors)
		return &Error{Errors: fieldErrors}
	}
	return nil
}

func isStructPointer(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct
}

// collectDecodeErrors flattens the joined error tree of mapstructure in order.
func collectDecodeErrors(err error, input any, out []FieldError) []FieldError {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			out = collectDecodeErrors(inner, input, out)
		}
		return out
	}

	decodeErr, ok := err.(*mapstructure.DecodeError)
	if !ok {
		// the top level wraps the joined errors in a message
		if inner := errors.Unwrap(err); inner != nil {
			return collectDecodeErrors(inner, input, out)
		}
		return append(out, FieldError{Message: err.Error()})
	}

	fe := FieldError{Path: decodeErr.Name(), Message: decodeMessage(decodeErr.Unwrap())}
	fe.Value, fe.HasValue = lookup(input, fe.Path)
	return append(out, fe)
}

func decodeMessage(err error) string {
	var unconvertible *mapstructure.UnconvertibleTypeError
	if errors.As(err, &unconvertible) {
		return fmt.Sprintf("expected %s, got %s", describeType(unconvertible.Expected.Type()), TypeLabel(unconvertible.Value))
	}
	var parseErr *mapstructure.ParseError
	if errors.As(err, &parseErr) && parseErr.Err != nil {
		return parseErr.Err.Error()
	}
	return err.Error()
}

func (e *Engine) appendValidationErrors(out []FieldError, validationErrors validator.ValidationErrors, input any) []FieldError {
	reported := make([]string, 0, len(out))
	for _, fe := range out {
		reported = append(reported, fe.Path)
	}

	for _, ve := range validationErrors {
		path := ve.Namespace()
		// strip the name of the root struct
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		if coveredByAny(reported, path) {
			continue
		}

		fe := FieldError{Path: path, Message: e.validationMessage(ve)}
		fe.Value, fe.HasValue = lookup(input, path)
		out = append(out, fe)
	}
	return out
}

func coveredByAny(parents []string, path string) bool {
	for _, parent := range parents {
		if covers(parent, path) {
			return true
		}
	}
	return false
}

func (e *Engine) validationMessage(ve validator.FieldError) string {
	if msg, ok := e.messages[ve.Tag()]; ok {
		return msg
	}
	switch ve.Tag() {
	case "required":
		return "missing required field"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(ve.Param()), ", ")
	}
	return fmt.Sprintf("failed on the %q constraint", ve.Tag())
}

func describeType(t reflect.Type) string {
	if t == timeType {
		return "date-time string"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Ptr:
		return describeType(t.Elem())
	}
	return t.String()
}

// TypeLabel names the JSON type of a generic decoded value. Values that are
// not produced by a JSON decoder are labelled with their Go type.
func TypeLabel(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return reflect.TypeOf(v).String()
}
