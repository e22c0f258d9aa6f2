package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return MoodID(fl.Field().String()).Valid()
	})
	return v
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid " + strings.Join(e.Fields, ", ")
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return ve
}

// Validate checks a habit before it is persisted.
func (h Habit) Validate() error {
	if err := validate.Struct(h); err != nil {
		return fieldErrors(err)
	}
	if h.StartDate.IsZero() {
		return &ValidationError{Fields: []string{"StartDate (required)"}}
	}
	return nil
}

// Validate checks a mood entry before it is persisted.
func (e MoodEntry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fieldErrors(err)
	}
	if e.Date.IsZero() {
		return &ValidationError{Fields: []string{"Date (required)"}}
	}
	return nil
}
