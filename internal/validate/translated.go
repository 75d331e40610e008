package validate

import (
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	id_translations "github.com/go-playground/validator/v10/translations/id"
)

var notBlankText = map[string]string{
	"id": "{0} tidak boleh kosong",
	"en": "{0} must not be blank",
}

// Translated is a validator whose errors render in the locale of Trans.
type Translated struct {
	*validator.Validate
	Trans ut.Translator
}

// NewTranslated returns a validator from New with default error messages
// registered on trans ("id" or "en"; anything else gets English). Field
// names in messages come from the json tags.
func NewTranslated(trans ut.Translator) (*Translated, error) {
	v := New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := trans.Locale()
	var err error
	switch locale {
	case "id":
		err = id_translations.RegisterDefaultTranslations(v, trans)
	default:
		locale = "en"
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return nil, fmt.Errorf("validate.NewTranslated: %s: %w", locale, err)
	}

	err = v.RegisterTranslation("notblank", trans,
		func(t ut.Translator) error {
			return t.Add("notblank", notBlankText[locale], true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T("notblank", fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
	if err != nil {
		return nil, fmt.Errorf("validate.NewTranslated: notblank: %w", err)
	}

	return &Translated{Validate: v, Trans: trans}, nil
}

// Messages renders every field error of err, in field order. It returns nil
// when err is not a validator.ValidationErrors.
func (t *Translated) Messages(err error) []string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Translate(t.Trans))
	}
	return out
}
