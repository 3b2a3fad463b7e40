package validator

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"sublet_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-gender", validateGender)
	mustRegister("date-ymd", validateDateYMD)
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).IsValid()
}

func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
