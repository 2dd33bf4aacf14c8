package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and reports the first failing field
// in a form suitable for a 400 response body.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("champ %s invalide (règle %s)", f.Field(), f.Tag())
		}
		return err
	}
	return nil
}
