package service

import (
	"errors"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/greanworld/grean-contact-api/internal/dto"
)

// whitespace as browsers understand it, so addresses copied from web forms
// behave the same on both sides.
const formSpace = `\s\v\p{Z}\x{FEFF}`

var (
	contactEmailPattern = regexp.MustCompile(`^[^` + formSpace + `@]+@[^` + formSpace + `@]+\.[^` + formSpace + `@]+$`)
	contactPhonePattern = regexp.MustCompile(`^\+?[0-9` + formSpace + `\-()]{7,}$`)
)

var contactViolationMessages = map[string]string{
	"Name":     "Name must be at least 2 characters long",
	"Subject":  "Subject must be at least 3 characters long",
	"Interest": "Please select what you are interested in",
	"Message":  "Message must be at least 10 characters long",
	"Phone":    "Please enter a valid phone number",
}

// NewContactValidator returns a validator with the contact form tags registered.
func NewContactValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegisterContactValidations(v)
	return v
}

func mustRegisterContactValidations(v *validator.Validate) {
	validations := map[string]validator.Func{
		"trimmed_min":   validateTrimmedMin,
		"contact_email": validateContactEmail,
		"loose_phone":   validateLoosePhone,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

func validateTrimmedMin(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(dto.TrimFormSpace(fl.Field().String())) >= limit
}

func validateContactEmail(fl validator.FieldLevel) bool {
	return contactEmailPattern.MatchString(dto.TrimFormSpace(fl.Field().String()))
}

// validateLoosePhone accepts blank values; the phone number is optional.
func validateLoosePhone(fl validator.FieldLevel) bool {
	phone := dto.TrimFormSpace(fl.Field().String())
	if phone == "" {
		return true
	}
	return contactPhonePattern.MatchString(phone)
}

// contactViolations runs every field rule and returns one message per failing
// field, in form order. A non-nil error means validation itself could not run.
func contactViolations(v *validator.Validate, req dto.ContactRequest) ([]string, error) {
	err := v.Struct(req)
	if err == nil {
		return nil, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, err
	}

	violations := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, contactViolationMessage(fe))
	}
	return violations, nil
}

func contactViolationMessage(fe validator.FieldError) string {
	if fe.StructField() == "Email" {
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Please enter a valid email address"
	}
	if msg, ok := contactViolationMessages[fe.StructField()]; ok {
		return msg
	}
	return fe.Error()
}
