package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilab/users-api/internal/apierr"
)

func num(s string) json.Number { return json.Number(s) }

func errCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Code
}

func TestValidateCreate_Valid(t *testing.T) {
	fields, err := ValidateCreate(map[string]any{
		"name":  "  Jane Doe  ",
		"email": "jane@Example.COM",
		"age":   num("25"),
		"role":  "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", *fields.Name)
	assert.Equal(t, "jane@example.com", *fields.Email)
	assert.Equal(t, 25, *fields.Age)
	assert.Equal(t, "admin", *fields.Role)
}

func TestValidateCreate_RoleOptional(t *testing.T) {
	fields, err := ValidateCreate(map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"age":   num("25"),
	})
	require.NoError(t, err)
	assert.Nil(t, fields.Role)
}

func TestValidateCreate_MissingFields(t *testing.T) {
	cases := map[string]map[string]any{
		"no name":     {"email": "a@b.com", "age": num("25")},
		"no email":    {"name": "Jane Doe", "age": num("25")},
		"no age":      {"name": "Jane Doe", "email": "a@b.com"},
		"blank name":  {"name": "   ", "email": "a@b.com", "age": num("25")},
		"nil email":   {"name": "Jane Doe", "email": nil, "age": num("25")},
		"empty input": {},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateCreate(data)
			assert.Equal(t, "MISSING_FIELD", errCode(t, err))
		})
	}
}

func TestValidateFields_NameBoundaries(t *testing.T) {
	base := func(name string) map[string]any {
		return map[string]any{"name": name, "email": "a@b.com", "age": num("25")}
	}

	for _, n := range []int{3, 100} {
		_, err := ValidateCreate(base(strings.Repeat("a", n)))
		assert.NoError(t, err, "length %d should be accepted", n)
	}
	for _, n := range []int{2, 101} {
		_, err := ValidateCreate(base(strings.Repeat("a", n)))
		assert.Equal(t, "INVALID_NAME", errCode(t, err), "length %d should be rejected", n)
	}
}

func TestValidateFields_AgeBoundaries(t *testing.T) {
	base := func(age any) map[string]any {
		return map[string]any{"name": "Jane Doe", "email": "a@b.com", "age": age}
	}

	for _, age := range []string{"18", "150"} {
		_, err := ValidateCreate(base(num(age)))
		assert.NoError(t, err, "age %s should be accepted", age)
	}
	for _, age := range []string{"17", "151"} {
		_, err := ValidateCreate(base(num(age)))
		assert.Equal(t, "INVALID_AGE", errCode(t, err), "age %s should be rejected", age)
	}

	// Numeric strings parse; non-numeric input does not.
	fields, err := ValidateCreate(base("42"))
	require.NoError(t, err)
	assert.Equal(t, 42, *fields.Age)

	_, err = ValidateCreate(base("forty-two"))
	assert.Equal(t, "INVALID_AGE", errCode(t, err))

	_, err = ValidateCreate(base(true))
	assert.Equal(t, "INVALID_AGE", errCode(t, err))
}

func TestValidateFields_Email(t *testing.T) {
	base := func(email string) map[string]any {
		return map[string]any{"name": "Jane Doe", "email": email, "age": num("25")}
	}

	fields, err := ValidateCreate(base("John.Smith@EXAMPLE.com"))
	require.NoError(t, err)
	// Local part keeps its case; the domain is normalized.
	assert.Equal(t, "John.Smith@example.com", *fields.Email)

	for _, bad := range []string{"not-an-email", "missing@domain", "@example.com", "a b@example.com"} {
		_, err := ValidateCreate(base(bad))
		assert.Equal(t, "INVALID_EMAIL", errCode(t, err), "email %q should be rejected", bad)
	}
}

func TestValidateFields_Role(t *testing.T) {
	base := func(role string) map[string]any {
		return map[string]any{"name": "Jane Doe", "email": "a@b.com", "age": num("25"), "role": role}
	}

	for _, role := range []string{"admin", "ADMIN", " User "} {
		_, err := ValidateCreate(base(role))
		assert.NoError(t, err, "role %q should be accepted", role)
	}
	_, err := ValidateCreate(base("superuser"))
	assert.Equal(t, "INVALID_ROLE", errCode(t, err))
}

func TestValidateUpdate_EmptyIsValid(t *testing.T) {
	fields, err := ValidateUpdate(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, Fields{}, fields)
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	fields, err := ValidateUpdate(map[string]any{"age": num("30")})
	require.NoError(t, err)
	assert.Nil(t, fields.Name)
	assert.Nil(t, fields.Email)
	assert.Nil(t, fields.Role)
	assert.Equal(t, 30, *fields.Age)

	_, err = ValidateUpdate(map[string]any{"name": "ab"})
	assert.Equal(t, "INVALID_NAME", errCode(t, err))
}

func TestValidateLogin(t *testing.T) {
	email, err := ValidateLogin(map[string]any{"email": "Admin@Example.COM"})
	require.NoError(t, err)
	assert.Equal(t, "Admin@example.com", email)

	_, err = ValidateLogin(map[string]any{})
	assert.Equal(t, "MISSING_FIELD", errCode(t, err))

	_, err = ValidateLogin(map[string]any{"email": "   "})
	assert.Equal(t, "MISSING_FIELD", errCode(t, err))

	_, err = ValidateLogin(map[string]any{"email": "nope"})
	assert.Equal(t, "INVALID_EMAIL", errCode(t, err))
}

func TestValidateUserID(t *testing.T) {
	id, err := ValidateUserID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "", "1.5"} {
		_, err := ValidateUserID(raw)
		assert.Equal(t, "INVALID_USER_ID", errCode(t, err), "id %q should be rejected", raw)
	}
	for _, raw := range []string{"0", "-3"} {
		_, err := ValidateUserID(raw)
		assert.Equal(t, "INVALID_USER_ID", errCode(t, err), "id %q should be rejected", raw)
	}
}
