package util

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// PhonePattern accepts an optional leading +, an optionally parenthesised
// three-digit prefix and 3+4..6 digits separated by -, space or dot.
var PhonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-\s\.]?[0-9]{3}[-\s\.]?[0-9]{4,6}$`)

var otpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("phone", validatePhone)
	Validate.RegisterValidation("otpcode", validateOTPCode)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateOTPCode(fl validator.FieldLevel) bool {
	return IsValidOTPCode(fl.Field().String())
}

func IsValidPhone(phone string) bool {
	return PhonePattern.MatchString(phone)
}

func IsValidOTPCode(code string) bool {
	return otpCodePattern.MatchString(code)
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []*ErrorResponse{{Tag: "invalid", Msg: err.Error()}}
	}

	for _, err := range validationErrors {
		var element ErrorResponse
		element.Field = err.Field()
		element.Tag = err.Tag()

		switch err.Tag() {
		case "required":
			element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
		case "min":
			element.Msg = fmt.Sprintf("Field '%s' must be at least %s.", element.Field, err.Param())
		case "max":
			element.Msg = fmt.Sprintf("Field '%s' must be at most %s.", element.Field, err.Param())
		case "phone":
			element.Msg = "Invalid phone number format."
		case "otpcode":
			element.Msg = "OTP must be a 6-digit code."
		case "oneof":
			element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, err.Param())
		default:
			element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
		}
		errs = append(errs, &element)
	}
	return errs
}
