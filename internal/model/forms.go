package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Human-readable rejection reasons shared by creation and update paths
const (
	ReasonPasswordPolicy = "Does not comply to password policy. (At least one uppercase, one lowercase, one number and one special character required.)"
	ReasonInvalidColour  = "Provided colour is not a valid Hexadecimal colour-string."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names in validation failures
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// AccountForm is the submitted body of an account creation request
type AccountForm struct {
	Name            string `json:"name" validate:"required,max=64,excludesall=/"`
	Password        string `json:"password" validate:"password"`
	PreferredColour string `json:"preferredColour" validate:"hexcolor"`
	Role            Role   `json:"role" validate:"oneof=ROLE_PLAYER ROLE_ADMIN"`
}

// Validate checks field-level constraints, returning an ErrValidation AccountError
func (f AccountForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return validationFailure(err)
	}
	return nil
}

// PasswordForm is the body of a password update
type PasswordForm struct {
	OldPassword  string `json:"oldPassword"`
	NextPassword string `json:"nextPassword"`
}

// ColourForm carries a preferred colour, both in updates and queries
type ColourForm struct {
	Colour string `json:"colour"`
}

// ValidPassword enforces the password policy: at least one uppercase, one
// lowercase, one digit and one special character. bcrypt only reads the
// first 72 bytes, so longer passwords are refused.
func ValidPassword(password string) bool {
	if len(password) > 72 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidColour reports whether colour is a hexadecimal colour string
func ValidColour(colour string) bool {
	return validate.Var(colour, "required,hexcolor") == nil
}

func validationFailure(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &AccountError{Kind: ErrValidation, Reason: "Invalid account form.", Cause: err}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "password":
		return NewAccountError(ErrValidation, ReasonPasswordPolicy)
	case "hexcolor":
		return NewAccountError(ErrValidation, ReasonInvalidColour)
	case "oneof":
		return NewAccountError(ErrValidation, fmt.Sprintf("Unknown role %q.", fe.Value()))
	case "required":
		return NewAccountError(ErrValidation, fmt.Sprintf("Field %q is required.", fe.Field()))
	default:
		return NewAccountError(ErrValidation, fmt.Sprintf("Field %q is invalid (%s).", fe.Field(), fe.Tag()))
	}
}

// GameServerForm is the body of a game-server registration
type GameServerForm struct {
	Name        string `json:"name" validate:"required,max=64,excludesall=/"`
	DisplayName string `json:"displayName" validate:"max=128"`
	Location    string `json:"location" validate:"required,url"`
	MinPlayers  int    `json:"minPlayers" validate:"min=1"`
	MaxPlayers  int    `json:"maxPlayers" validate:"gtefield=MinPlayers"`
}

// Validate checks field-level constraints of a registration
func (f GameServerForm) Validate() error {
	return validate.Struct(f)
}
