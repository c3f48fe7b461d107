package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Phone numbers such as "+1 (555) 123-4567"
	PhonePattern = `^\+?[0-9 ()\-.]{7,20}$`

	// Hashtag names, with or without the leading '#'
	HashtagPattern = `^#?[\p{L}\p{N}_]{1,50}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone   *regexp.Regexp
	Hashtag *regexp.Regexp
}{
	Phone:   regexp.MustCompile(PhonePattern),
	Hashtag: regexp.MustCompile(HashtagPattern),
}

// NonFieldErrors is the key for errors not tied to a single field
const NonFieldErrors = "non_field_errors"

var registerOnce sync.Once

// RegisterRules installs the custom tags on gin's validator engine and
// makes field errors report json names
func RegisterRules() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Phone.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("hashtag", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Hashtag.MatchString(fl.Field().String())
		})
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
	}
	if name == "" {
		return f.Name
	}
	return name
}

// FieldErrors converts a binding error into a field → messages map
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[NonFieldErrors] = []string{err.Error()}
		return out
	}

	for _, fe := range verrs {
		field := fieldPath(fe)
		out[field] = append(out[field], message(fe))
	}
	return out
}

// fieldPath drops the struct name prefix, e.g. "RegisterRequest.email" → "email"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return "Ensure this field has at least " + fe.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "max":
		if fe.Kind() == reflect.String {
			return "Ensure this field has no more than " + fe.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "eqfield":
		return "Must match " + strings.ToLower(fe.Param()) + "."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	case "phone":
		return "Enter a valid phone number."
	case "hashtag":
		return "Enter a valid hashtag."
	default:
		return "Invalid value (" + fe.Tag() + ")."
	}
}
