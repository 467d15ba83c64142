package apperror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// FieldError is one entry of the field-level error list surfaced on 400s.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MapValidationError turns validator errors into a single AppError whose
// Details carry the per-field messages.
func MapValidationError(err error) (*AppError, []FieldError) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			human := formatFieldName(e.Field())
			var msg string
			switch e.Tag() {
			case "required":
				msg = fmt.Sprintf("%s is required", human)
			case "oneof":
				msg = fmt.Sprintf("%s must be one of: %s", human, e.Param())
			case "min", "gte":
				msg = fmt.Sprintf("%s is below the allowed minimum", human)
			case "max", "lte":
				msg = fmt.Sprintf("%s exceeds the allowed maximum", human)
			default:
				msg = fmt.Sprintf("%s is invalid", human)
			}
			fields = append(fields, FieldError{Field: e.Field(), Message: msg})
		}
		return New(CodeInvalidInput, "Validation failed", http.StatusBadRequest), fields
	}

	return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest), nil
}
