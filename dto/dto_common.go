package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs struct-tag validation on a request body.
func Validate(v any) error { return validate.Struct(v) }

type ErrorResponse struct {
	Error string `json:"error"`
}
