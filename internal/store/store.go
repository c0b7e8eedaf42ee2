// Package store owns the set of user records. It is the only writer: records
// are created, updated and deleted exclusively through a Store, which enforces
// case-insensitive email uniqueness and sequential id assignment.
package store

import (
	"errors"

	"github.com/apilab/users-api/internal/models"
	"github.com/apilab/users-api/internal/validation"
)

// ErrNotFound is returned when no live record matches the given id or email.
var ErrNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a create or update would leave two live
// records sharing a case-normalized email.
var ErrDuplicateEmail = errors.New("email already exists")

// Store defines the interface for user record storage. Mutating operations
// are all-or-nothing: a failed create or update leaves the store unchanged.
type Store interface {
	Create(fields validation.Fields) (models.User, error)
	Get(id int) (models.User, error)
	GetByEmail(email string) (models.User, error)
	List(roleFilter string) ([]models.User, error)
	Update(id int, fields validation.Fields) (models.User, error)
	Delete(id int) (models.User, error)
	Reset() error
}

type seedUser struct {
	name  string
	email string
	age   int
	role  string
}

// The two records present at startup and restored by Reset.
var seedUsers = []seedUser{
	{name: "Admin User", email: "admin@example.com", age: 30, role: models.RoleAdmin},
	{name: "John Doe", email: "john@example.com", age: 25, role: models.RoleUser},
}

func (s seedUser) fields() validation.Fields {
	name, email, age, role := s.name, s.email, s.age, s.role
	return validation.Fields{Name: &name, Email: &email, Age: &age, Role: &role}
}
