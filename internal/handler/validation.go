package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// flexString unmarshals from either a JSON string or a JSON number. Phone
// apps autofill numeric keyboards, so passwords occasionally arrive as bare
// numbers; the literal digits are what the user typed.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindErrorResponse turns gin binding failures into the structured 400 body.
// Validator errors become per-field messages; anything else (malformed JSON,
// wrong types) gets a generic message.
func bindErrorResponse(err error) response {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return response{Success: false, Message: "Invalid request body"}
	}

	errs := make([]fieldError, 0, len(ve))
	for _, fe := range ve {
		errs = append(errs, fieldError{Field: fieldName(fe), Message: fieldMessage(fe)})
	}
	return response{Success: false, Message: "Validation Error", Errors: errs}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "FullName":
		return "full_name"
	default:
		return strings.ToLower(fe.Field())
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "FullName":
		if fe.Tag() == "required" {
			return "Full name is required"
		}
		return "Full name must be between 3 to 50 characters"
	case "Phone":
		if fe.Tag() == "required" {
			return "Phone number is required"
		}
		return "Phone number must be exactly 10 digits"
	case "Password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 6 characters long"
		default:
			return "Password must be between 6 to 20 characters"
		}
	case "Role":
		return "Role must be either 'user' or 'admin'"
	}
	return fmt.Sprintf("%s failed validation (%s)", fieldName(fe), fe.Tag())
}
