package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"lab-portal/internal/common"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	weblinkTag   = "weblink"
	weblinkText  = "{0} must be a valid http(s) URL"
	weblinkRegex = regexp.MustCompile(`^https?://\S+$`)
)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// report JSON field names rather than Go ones
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(weblinkTag, func(fl validator.FieldLevel) bool {
		return weblinkRegex.MatchString(fl.Field().String())
	})
	RegisterCustomTranslation(weblinkTag, weblinkText)
}

// RegisterCustomTranslation registers an english message for a validation tag.
func RegisterCustomTranslation(tag, text string) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and converts failures into a *common.ValidationError
// keyed by the JSON namespace of each field (e.g. "items[0].amount").
func Struct(s any) error {
	return convert(Validate.Struct(s))
}

func convert(err error) error {
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fields := make([]common.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, common.FieldError{
			Field: fieldPath(fe.Namespace()),
			Error: fe.Translate(Translator),
		})
	}
	return common.NewValidationError("", fields...)
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// StructExcept is Struct with the named Go fields left unchecked.
func StructExcept(s any, fields ...string) error {
	return convert(Validate.StructExcept(s, fields...))
}
