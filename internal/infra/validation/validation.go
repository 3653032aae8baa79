package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode"

	english "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(fieldName)

	if err := validate.RegisterValidation("duration", isDuration); err != nil {
		panic(err)
	}

	eng := english.New()
	uni := ut.New(eng, eng)
	trans, _ = uni.GetTranslator("en")
	if err := en.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	registerTranslation("duration", "{0} must be a positive duration such as 5s or 1m")
}

// FieldError is a single failed constraint, keyed by its dotted yaml path.
type FieldError struct {
	Field   string
	Message string
}

// Error lists every failed constraint of a validated struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Struct validates v and translates failures into an *Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, FieldError{
			Field:   trimRoot(e.Namespace()),
			Message: e.Translate(trans),
		})
	}
	return &Error{Fields: fields}
}

func registerTranslation(tag, text string) {
	err := validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
	if err != nil {
		panic(err)
	}
}

// isDuration accepts Go durations greater than zero.
func isDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return toSnakeCase(f.Name)
	}
	return name
}

// trimRoot drops the top-level struct name from a validator namespace.
func trimRoot(ns string) string {
	if _, after, ok := strings.Cut(ns, "."); ok {
		return after
	}
	return ns
}

// toSnakeCase converts PascalCase/camelCase to snake_case.
func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, unicode.ToLower(r))
		} else {
			result = append(result, r)
		}
	}
	return string(result)
}
