// Package validation checks item form input before it reaches the store.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

var (
	// Validate is the shared validator instance.
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register category validator: %v", err))
	}
	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
	if err := Validate.RegisterValidation("isodate", validateISODate); err != nil {
		panic(fmt.Sprintf("failed to register isodate validator: %v", err))
	}
	if err := Validate.RegisterValidation("clock", validateClock); err != nil {
		panic(fmt.Sprintf("failed to register clock validator: %v", err))
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return category.Valid(category.ID(fl.Field().String()))
}

func validatePriority(fl validator.FieldLevel) bool {
	return category.Priority(fl.Field().String()).Valid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := item.ParseDate(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := item.ParseClock(fl.Field().String())
	return err == nil
}

// FieldErrors maps a JSON field name to a human readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Fields validates item form input. Whitespace-only titles count as empty.
// The returned error, if any, is a FieldErrors.
func Fields(f item.Fields) error {
	f.Title = strings.TrimSpace(f.Title)
	err := Validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[jsonName(fe.Field())] = message(fe)
	}
	return out
}

func jsonName(field string) string {
	return strings.ToLower(field)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "category":
		return fmt.Sprintf("unknown category %q", fe.Value())
	case "priority":
		return fmt.Sprintf("unknown priority %q (must be low, medium or high)", fe.Value())
	case "isodate":
		return fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", fe.Value())
	case "clock":
		return fmt.Sprintf("invalid time %q (expected HH:MM)", fe.Value())
	default:
		return fe.Tag()
	}
}
