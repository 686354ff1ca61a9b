package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// MaxDisplayNameLength bounds display names in characters.
const MaxDisplayNameLength = 100

// RegisterInput holds the fields of a new profile.
type RegisterInput struct {
	Identifier  string
	DisplayName string
	Age         int
	Gender      domain.Gender
}

// Validate checks the profile fields. The identifier is checked by the
// service, which knows the required domain.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.DisplayName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Age < domain.MinAge || i.Age > domain.MaxAge {
		errs = append(errs, domain.FieldError{Field: "age", Message: "must be between 1 and 120"})
	}

	if !i.Gender.IsValid() {
		errs = append(errs, domain.FieldError{Field: "gender", Message: "must be male or female"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i RegisterInput) profile() domain.Profile {
	return domain.Profile{
		Identifier:  domain.NormalizeIdentifier(i.Identifier),
		DisplayName: strings.TrimSpace(i.DisplayName),
		Age:         i.Age,
		Gender:      i.Gender,
	}
}

// SignInInput identifies the user and, for first sign-in, carries the
// registration details.
type SignInInput struct {
	Identifier string

	// Used only when no profile exists yet.
	DisplayName string
	Age         int
	Gender      domain.Gender
}

func (i SignInInput) hasRegistration() bool {
	return strings.TrimSpace(i.DisplayName) != "" || i.Age != 0 || i.Gender != ""
}

func (i SignInInput) registerInput() RegisterInput {
	return RegisterInput{
		Identifier:  i.Identifier,
		DisplayName: i.DisplayName,
		Age:         i.Age,
		Gender:      i.Gender,
	}
}
