// Package validation wires request validation into gin's binding and turns
// binding failures into per-field messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key used for errors that are not tied to a field
const NonFieldErrors = "non_field_errors"

var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

var registerOnce sync.Once

// IsColor reports whether s is a #RGB or #RRGGBB hex color.
func IsColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Register installs the custom validators on gin's validator engine. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return IsColor(fl.Field().String())
		})
	})
}

// BindJSON binds the request body into obj and returns field errors, or nil
// when the body is valid. An empty body is validated as an empty object.
func BindJSON(c *gin.Context, obj any) map[string][]string {
	Register()
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}
	return FieldErrors(err)
}

// FieldErrors converts a binding error into messages keyed by json field name
func FieldErrors(err error) map[string][]string {
	out := map[string][]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			field := fieldName(fe)
			out[field] = append(out[field], message(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = NonFieldErrors
		}
		out[field] = append(out[field], typeMessage(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		out[NonFieldErrors] = []string{fmt.Sprintf("JSON parse error - %s", err.Error())}
	default:
		out[NonFieldErrors] = []string{err.Error()}
	}
	return out
}

// fieldName strips the struct name from the namespace, keeping nested paths
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "color":
		return "Enter a valid color."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Incorrect type."
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	default:
		return "Incorrect type."
	}
}
