package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

var requestValidator = validator.New()

// ValidateRequest checks the validate tags of a command or query and reports the first
// failing field as an invalid argument.
func ValidateRequest(request interface{}) error {
	err := requestValidator.Struct(request)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(snakeCase(fe.Field()), describeTag(fe))
	}
	return err
}

// ParseActor parses the address that issued a request
func ParseActor(raw string) (shared.Address, error) {
	actor, err := shared.NewAddress(raw)
	if err != nil {
		return shared.Address{}, shared.NewValidationError("actor", err.Error())
	}
	return actor, nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return fmt.Sprintf("failed validation: %s", fe.Tag())
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
