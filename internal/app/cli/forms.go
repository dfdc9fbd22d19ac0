package cli

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	userports "github.com/ecomarket/marketplace/internal/domains/users/ports"
)

// registrationForm enforces the registration field rules before the core ever
// sees the values: the core only receives already-accepted input.
type registrationForm struct {
	Name     string `validate:"required,min=3,max=30,fullname"`
	Username string `validate:"required,min=3,max=30,alphanum,containsany=abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=4,max=6"`
}

var fullnamePattern = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullnamePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateRegistration maps validator failures to the user-facing messages of
// the registration flow.
func validateRegistration(v *validator.Validate, form registrationForm) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fieldErrs[0].Field() {
	case "Name":
		return errors.New("name must be 3-30 letters and spaces, with no leading or trailing space")
	case "Username":
		return errors.New("username must be 3-30 alphanumeric characters and contain at least one letter")
	case "Email":
		return errors.New("email address is not valid")
	default:
		return errors.New("password must be 4-6 characters")
	}
}

func (f registrationForm) toInput() userports.RegistrationInput {
	return userports.RegistrationInput{
		Username: f.Username,
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
	}
}
