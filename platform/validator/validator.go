// Package validator wraps go-playground/validator for injection into handlers.
package validator

import "github.com/go-playground/validator/v10"

type Validator struct {
	v *validator.Validate
}

// New creates a Validator. Modules register their own tags with RegisterValidation.
func New() *Validator {
	return &Validator{v: validator.New()}
}

func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
