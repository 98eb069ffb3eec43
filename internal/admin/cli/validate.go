package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// account mirrors the web registration form's rules for the fields
// blogctl prompts for.
type account struct {
	Email string `validate:"required,email,max=100"`
	Name  string `validate:"required,max=100"`
}

var validate = validator.New()

// validateAccount reports every broken rule at once, wrapped in ErrUsage.
func validateAccount(email, name string) error {
	err := validate.Struct(account{Email: email, Name: name})
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	problems := make([]string, 0, len(ves))
	for _, fe := range ves {
		problems = append(problems, strings.ToLower(fe.Field())+": "+ruleMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrUsage, strings.Join(problems, "; "))
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email address"
	case "max":
		return "cannot be longer than " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
