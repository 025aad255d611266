package utils

import (
	"reflect"
	"strings"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the project's custom tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate validates struct tags on any request DTO.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("test_type", validateTestType)
	validate.RegisterValidation("subject_code", validateSubjectCode)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)

	// Report json field names in validation errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateTestType(fl validator.FieldLevel) bool {
	value := models.TestType(fl.Field().String())
	return value == models.TestTypePCM || value == models.TestTypePCB
}

func validateSubjectCode(fl validator.FieldLevel) bool {
	value := models.SubjectCode(fl.Field().String())
	for _, code := range models.AllSubjectCodes {
		if code == value {
			return true
		}
	}
	return false
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	switch models.DifficultyLevel(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}
