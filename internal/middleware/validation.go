package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators attaches the date-rule validators to gin's binding
// engine. The fields carry "YYYY-MM-DD" strings; the datetime tag has already
// checked the layout before these run, so unparseable values pass through and
// fail on their own tag.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type")
	}

	if err := v.RegisterValidation("beforetoday", beforeToday); err != nil {
		return fmt.Errorf("failed to register beforetoday validator: %w", err)
	}

	if err := v.RegisterValidation("notfuture", notFuture); err != nil {
		return fmt.Errorf("failed to register notfuture validator: %w", err)
	}

	return nil
}

// beforeToday requires a date strictly before the current date
func beforeToday(fl validator.FieldLevel) bool {
	date, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	return date.Before(today())
}

// notFuture requires a date on or before the current date
func notFuture(fl validator.FieldLevel) bool {
	date, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	return !date.After(today())
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
