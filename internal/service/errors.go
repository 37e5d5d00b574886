package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/revollution/storefront/internal/domain"
)

var (
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
	ErrUnknownProduct       = errors.New("unknown product")
)

// requirePresent runs the struct's validate tags and reports any failure as
// MissingFields with the given message.
func requirePresent(v *validator.Validate, req any, message string) error {
	if err := v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.WrapError(domain.KindMissingFields, message, err)
		}
		return domain.WrapError(domain.KindInvalidInput, message, err)
	}
	return nil
}
