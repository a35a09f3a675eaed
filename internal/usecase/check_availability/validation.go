package check_availability

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: field %s failed on %q", ErrInvalidInput, fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
