// Package validate holds the input predicates used by the console client.
// They are pure: no I/O, no state beyond a shared validator instance.
package validate

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// InvalidGPA is the value IsValidGPA reports alongside false.
// It lies outside [0,4] so it can never be mistaken for a parsed GPA.
const InvalidGPA = -1.0

// Field rules shared with the struct tags on types.Mahasiswa.
const (
	idRule  = "len=10,number"
	gpaRule = "gte=0,lte=4"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// New returns a validator with the custom tags this module relies on
// ("notblank") registered. Every validator.Validate in the module must come
// from here, otherwise Struct panics on the unknown tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		// Only fails on an empty tag name or nil func.
		panic(err)
	}
	return v
}

// shared returns the package-level validator, created on first use.
func shared() *validator.Validate {
	once.Do(func() { instance = New() })
	return instance
}

// IsValidID reports whether text is exactly 10 ASCII digits.
// The raw text is checked: surrounding whitespace makes it invalid.
func IsValidID(text string) bool {
	if text == "" {
		return false
	}
	return shared().Var(text, idRule) == nil
}

// IsNonEmpty reports whether text has at least one non-whitespace character.
func IsNonEmpty(text string) bool {
	return strings.TrimSpace(text) != ""
}

// IsValidGPA parses text using a comma as the decimal separator ("3,5").
// It returns (true, value) when the value lies in [0,4] and
// (false, InvalidGPA) otherwise.
func IsValidGPA(text string) (bool, float64) {
	value, ok := parseDecimalComma(text)
	if !ok {
		return false, InvalidGPA
	}
	if err := shared().Var(value, gpaRule); err != nil {
		return false, InvalidGPA
	}
	return true, value
}

// IsAffirmative reports whether answer is a yes ("y", "yes", "ya").
// Everything else, including an empty answer, is a no.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "ya":
		return true
	default:
		return false
	}
}

// parseDecimalComma accepts digits with at most one comma as the fractional
// separator. A dot is rejected: in the comma locale it is a group separator,
// and no grouped value fits in [0,4].
func parseDecimalComma(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" || strings.Contains(s, ".") || strings.Count(s, ",") > 1 {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			// ParseFloat also accepts "Inf", "NaN", hex and underscores.
			return 0, false
		}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
