package serverutils

import (
	"tasknotes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}
