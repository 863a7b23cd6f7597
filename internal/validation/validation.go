// Package validation performs client-side form validation. Failures are
// surfaced inline next to the offending field and never reach the HTTP
// layer.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// LoginForm is the login screen's input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ForgotPasswordForm is the forgot-password screen's input.
type ForgotPasswordForm struct {
	Email string `validate:"required,email"`
}

// ResetPasswordForm is the reset-password screen's input.
type ResetPasswordForm struct {
	Password        string `validate:"required,min=8,pw_upper,pw_lower,pw_number,pw_special"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// ChangePasswordForm is the profile change-password form's input.
type ChangePasswordForm struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=8,pw_upper,pw_lower,pw_number,pw_special"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// FieldError is one validation failure, addressed to a specific field.
type FieldError struct {
	// Field is the struct field name that failed.
	Field string
	// Message is the user-facing message for the failure.
	Message string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "pw_upper", classRule(unicode.IsUpper))
	mustRegister(v, "pw_lower", classRule(unicode.IsLower))
	mustRegister(v, "pw_number", classRule(unicode.IsDigit))
	mustRegister(v, "pw_special", classRule(func(r rune) bool {
		return strings.ContainsRune("!@#$%^&*()_+[]{}|;:,.<>?", r)
	}))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// classRule builds a rule requiring at least one rune of the class.
func classRule(class func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), class)
	}
}

// Validate checks form and returns one FieldError per failing field, or
// nil when the form is valid.
func Validate(form any) []FieldError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", capitalize(field))
	case "email":
		return fmt.Sprintf("Invalid %s.", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", capitalize(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", capitalize(field), fe.Param())
	case "eqfield":
		return "Passwords do not match."
	case "pw_upper":
		return "Password must contain uppercase letters."
	case "pw_lower":
		return "Password must contain lowercase letters."
	case "pw_number":
		return "Password must contain numbers."
	case "pw_special":
		return "Password must contain special characters."
	}
	return fmt.Sprintf("Invalid %s.", field)
}

// humanize turns a struct field name like ConfirmPassword into
// "confirm password".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
