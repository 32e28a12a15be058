// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "botdesk/internal/platform/errors"
)

// MaxBody caps request bodies
const MaxBody = 1 << 20

type engine struct {
	v     *validator.Validate
	trans ut.Translator
}

var get = sync.OnceValue(func() *engine {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, trans)

	// shorter than the stock wording, which spells out "characters" or "items" by kind
	short := map[string]string{
		"min":   "{0} must be at least {1}",
		"max":   "{0} must be at most {1}",
		"oneof": "{0} must be one of [{1}]",
	}
	for tag, text := range short {
		tag, text := tag, text
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			})
	}
	return &engine{v: v, trans: trans}
})

// jsonName reports fields by their wire name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// ParseJSON decodes r's body into T and validates it. Unknown fields,
// trailing data and bodies over MaxBody are JSON errors; failed rules are
// validation errors naming the field
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero, dst T
	defer r.Body.Close()

	body := io.LimitReader(r.Body, MaxBody+1)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("request body is required")
		}
		return zero, perr.Wrapf(err, perr.ErrorCodeJSON, "invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected data after the JSON body")
	}
	if dec.InputOffset() > MaxBody {
		return zero, perr.JSONErrf("request body exceeds %d bytes", MaxBody)
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs the struct rules on v; non struct values pass
func Validate(v any) error {
	e := get()
	err := e.v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(e.trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
}
