// Package validator binds go-playground/validator as Echo's request validator.
package validator

import (
	gpvalidator "github.com/go-playground/validator/v10"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *gpvalidator.Validate
}

// New constructs the validator used by the HTTP server.
func New() *EchoValidator {
	return &EchoValidator{validate: gpvalidator.New(gpvalidator.WithRequiredStructEnabled())}
}

// Validate checks struct tags and maps failures to the validation domain
// error so the error handler renders a 400 with per-field reasons.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs gpvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}

		return domainerrors.ErrValidationFailed.WithDetails(fields)
	}

	return errors.WithStack(err)
}
