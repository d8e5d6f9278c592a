package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every failed rule for one input. Error() reports the first
// message so callers that only show one line still get something readable.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}
	return e.Issues[0].Message
}

func (e *Error) Add(field, message string) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: message})
}

func (e *Error) Has(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no issue was recorded.
func (e *Error) Err() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Struct runs the struct tag rules on v. The result is never nil so callers
// can append cross-field issues before calling Err.
func Struct(v any) *Error {
	out := &Error{}
	err := validate.Struct(v)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("", err.Error())
		return out
	}
	root := reflect.TypeOf(v)
	for _, fe := range fieldErrs {
		label := labelFor(root, fe.StructNamespace())
		out.Add(fieldPath(fe.Namespace()), message(fe, label, root))
	}
	return out
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func message(fe validator.FieldError, label string, root reflect.Type) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "uuid", "uuid4":
		return label + " must be a valid identifier"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", label, fe.Param(), unitSuffix(fe.Kind()))
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", label, fe.Param(), unitSuffix(fe.Kind()))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s cannot be before %s", label, strings.ToLower(siblingLabel(root, fe)))
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", label, fe.Param())
	}
	return label + " is invalid"
}

func unitSuffix(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}

// fieldPath drops the root struct name from a json-tag namespace.
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func siblingLabel(root reflect.Type, fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if idx := strings.LastIndexByte(ns, '.'); idx >= 0 {
		return labelFor(root, ns[:idx+1]+fe.Param())
	}
	return humanize(fe.Param())
}

// labelFor resolves the `label` tag of the field addressed by a Go-name
// namespace such as "Input.Contacts[0].FullName". Fields without a label
// fall back to a humanized json name.
func labelFor(root reflect.Type, structNamespace string) string {
	segments := strings.Split(structNamespace, ".")
	if len(segments) < 2 {
		return humanize(structNamespace)
	}
	t := root
	var field reflect.StructField
	for _, segment := range segments[1:] {
		if idx := strings.IndexByte(segment, '['); idx >= 0 {
			segment = segment[:idx]
		}
		t = elem(t)
		if t == nil || t.Kind() != reflect.Struct {
			return humanize(segment)
		}
		f, ok := t.FieldByName(segment)
		if !ok {
			return humanize(segment)
		}
		field = f
		t = f.Type
	}
	if label := field.Tag.Get("label"); label != "" {
		return label
	}
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = field.Name
	}
	return humanize(name)
}

func elem(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t
		}
	}
	return nil
}

// humanize turns "effectiveDate" into "Effective date".
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
