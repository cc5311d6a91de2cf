package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns the first failed rule as an *entity.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	msg := "is invalid"
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = "must be at most " + fe.Param() + " characters"
	}
	return &entity.ValidationError{Field: fe.Field(), Message: msg}
}

func ValidateCaptureLeadInput(input CaptureLeadInput) error {
	return validateStruct(input)
}

func ValidateJoinWaitlistInput(input JoinWaitlistInput) error {
	return validateStruct(input)
}
