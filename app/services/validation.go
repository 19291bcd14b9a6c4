package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

func validateStruct(validate *validator.Validate, input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperr.Validation(helpers.FirstValidationMessage(verrs)).
			WithDetails("fields", helpers.FormatValidationErrors(verrs))
	}
	return apperr.Validation(err.Error())
}
