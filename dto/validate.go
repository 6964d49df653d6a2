package dto

import (
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/engagekit/engage-backend/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct validation tags on an inbound dto, mapping
// failures to the 400 error class.
func Validate(dto any) error {
	if err := validate.Struct(dto); err != nil {
		return errors.Wrap(models.BadParameterError, err.Error())
	}
	return nil
}
