package contentsync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"orchestra-site/internal/domain/media"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// imageref: empty, an inline data:image payload, or an http(s) URL
	_ = v.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		switch media.Classify(s) {
		case media.RefEmpty, media.RefInline:
			return true
		default:
			return media.IsDurableURL(s)
		}
	})

	return v
}

// decodeDocument unmarshals body into dst and validates it. The body may be
// the document itself or {"content": document}.
func decodeDocument(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &ValidationError{Fields: []FieldError{{Message: "request body is empty"}}}
	}

	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if raw := bytes.TrimSpace(envelope.Content); len(raw) > 0 && raw[0] == '{' {
			body = raw
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{Fields: []FieldError{{
				Field:   typeErr.Field,
				Message: "must be " + describeType(typeErr.Type),
			}}}
		}
		return &ValidationError{Fields: []FieldError{{Message: "malformed JSON: " + err.Error()}}}
	}

	return validateDocument(dst)
}

func validateDocument(doc any) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate document: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describeTag(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name: "AwardsDocument.achievements[0].title"
// becomes "achievements[0].title".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "imageref":
		return "must be an http(s) image URL or a data:image payload"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Uint, reflect.Uint64:
		return "a number"
	case reflect.Slice:
		return "an array"
	case reflect.Struct, reflect.Map:
		if t == reflect.TypeOf(ChildID{}) {
			return "a positive integer or a string"
		}
		return "an object"
	default:
		return t.String()
	}
}
