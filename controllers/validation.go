package controllers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spotsolve-be/models"
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("issue_status", func(fl validator.FieldLevel) bool {
		_, known := models.ParseStatus(fl.Field().String())
		return known
	})
}
