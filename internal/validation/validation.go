// Package validation checks and normalizes incoming request fields. All
// functions are pure: they inspect a decoded JSON object and either return the
// normalized field set or a typed apierr error naming the first rule violated.
package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	ozzo "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/models"
)

// Fields is the normalized output of a create/update validation. Nil pointers
// mark fields absent from the request.
type Fields struct {
	Name  *string
	Email *string
	Age   *int
	Role  *string
}

// ValidateCreate validates fields for user creation. name, email and age are
// required and must be non-blank; role is optional.
func ValidateCreate(data map[string]any) (Fields, error) {
	for _, field := range []string{"name", "email", "age"} {
		v, ok := data[field]
		if !ok || v == nil || strings.TrimSpace(stringify(v)) == "" {
			return Fields{}, apierr.MissingField(field)
		}
	}
	return validateFields(data)
}

// ValidateUpdate validates fields for a partial update. No field is required;
// an empty input is a valid no-op update.
func ValidateUpdate(data map[string]any) (Fields, error) {
	return validateFields(data)
}

// ValidateLogin validates a login request and returns the normalized email.
func ValidateLogin(data map[string]any) (string, error) {
	v, ok := data["email"]
	if !ok || v == nil || strings.TrimSpace(stringify(v)) == "" {
		return "", apierr.MissingField("email")
	}
	return validateEmail(stringify(v))
}

// ValidateUserID parses a path segment as a user id (integer >= 1).
func ValidateUserID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apierr.InvalidUserID("User ID must be a valid integer")
	}
	if id < 1 {
		return 0, apierr.InvalidUserID("User ID must be a positive integer")
	}
	return id, nil
}

func validateFields(data map[string]any) (Fields, error) {
	var out Fields

	if v, ok := data["name"]; ok {
		name := strings.TrimSpace(stringify(v))
		if utf8.RuneCountInString(name) < 3 {
			return Fields{}, apierr.InvalidName("Name must be at least 3 characters long")
		}
		if utf8.RuneCountInString(name) > 100 {
			return Fields{}, apierr.InvalidName("Name must be less than 100 characters")
		}
		out.Name = &name
	}

	if v, ok := data["email"]; ok {
		email, err := validateEmail(stringify(v))
		if err != nil {
			return Fields{}, err
		}
		out.Email = &email
	}

	if v, ok := data["age"]; ok {
		age, err := parseAge(v)
		if err != nil {
			return Fields{}, err
		}
		out.Age = &age
	}

	if v, ok := data["role"]; ok {
		role := strings.ToLower(strings.TrimSpace(stringify(v)))
		if !models.ValidRole(role) {
			return Fields{}, apierr.InvalidRole()
		}
		out.Role = &role
	}

	return out, nil
}

// validateEmail checks address format and returns the normalized form: the
// domain part lowercased, which is what gets stored and compared.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if err := ozzo.Validate(email, ozzo.Required, is.Email); err != nil {
		return "", apierr.InvalidEmail()
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "", apierr.InvalidEmail()
	}
	local, domain := email[:at], email[at+1:]
	if !strings.Contains(domain, ".") {
		return "", apierr.InvalidEmail()
	}
	return local + "@" + strings.ToLower(domain), nil
}

// parseAge accepts a JSON number or a numeric string. Fractional JSON numbers
// truncate toward zero; fractional strings are rejected.
func parseAge(v any) (int, error) {
	var age int
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, apierr.InvalidAge("Age must be a valid integer")
			}
			i = int64(f)
		}
		age = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, apierr.InvalidAge("Age must be a valid integer")
		}
		age = i
	default:
		return 0, apierr.InvalidAge("Age must be a valid integer")
	}

	if age < 18 {
		return 0, apierr.InvalidAge("Age must be 18 or older")
	}
	if age > 150 {
		return 0, apierr.InvalidAge("Age must be less than 150")
	}
	return age, nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
