package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var nricPattern = regexp.MustCompile(`^[STFG]\d{7}[A-Z]$`)

// RegisterCustomValidators installs payroll-specific validation tags on gin's binding
// validator. Called once from main.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nric", validateNRIC)
	}
}

func validateNRIC(fl validator.FieldLevel) bool {
	return nricPattern.MatchString(fl.Field().String())
}

// ValidNRIC reports whether s is a structurally valid Singapore NRIC/FIN. Used by the
// CSV import path, which bypasses gin binding.
func ValidNRIC(s string) bool {
	return nricPattern.MatchString(s)
}
