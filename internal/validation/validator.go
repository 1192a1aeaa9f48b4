package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

var (
	mobileChars = regexp.MustCompile(`^[0-9\s\-+()]+$`)
	nonDigits   = regexp.MustCompile(`\D`)
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func New() *Validator {
	v := validator.New()

	// Contact numbers arrive formatted ("+91-9921695909", "022 1234 5678").
	// Accept separators but require at least 10 actual digits.
	v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		value = strings.TrimSpace(value)
		if value == "" || !mobileChars.MatchString(value) {
			return false
		}
		return len(nonDigits.ReplaceAllString(value, "")) >= 10
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return slugPattern.MatchString(value)
	})

	return &Validator{v: v}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
