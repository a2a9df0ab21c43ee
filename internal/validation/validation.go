// Package validation runs struct-tag validation over request payloads and
// reports every failing field through a single error type.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/hongminglow/research-tracker/internal/models"
)

// Error lists the request fields that are missing or invalid.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// Field returns an Error for a single field.
func Field(name string) *Error {
	return &Error{Fields: []string{name}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so messages match what clients sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"notblank": validators.NotBlank,
		"maxbytes": maxBytes,
		"role":     role,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// maxBytes limits a string's length in bytes, e.g. `maxbytes=72`. The stock
// max tag counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("maxbytes: bad parameter %q", fl.Param()))
	}
	return len(fl.Field().String()) <= limit
}

// role accepts the user roles known to models.ValidRole.
func role(fl validator.FieldLevel) bool {
	return models.ValidRole(fl.Field().String())
}

// Struct validates s against its `validate` tags. Tag failures come back as *Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{}
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}
