package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilab/users-api/internal/models"
	"github.com/apilab/users-api/internal/validation"
)

func createFields(name, email string, age int) validation.Fields {
	return validation.Fields{Name: &name, Email: &email, Age: &age}
}

func TestMemoryStore_Seeds(t *testing.T) {
	s := NewMemoryStore()

	users, err := s.List("")
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, "john@example.com", users[1].Email)
	assert.Equal(t, models.RoleUser, users[1].Role)
}

func TestMemoryStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()

	a, err := s.Create(createFields("Alice Smith", "alice@example.com", 30))
	require.NoError(t, err)
	b, err := s.Create(createFields("Bob Jones", "bob@example.com", 40))
	require.NoError(t, err)

	assert.Equal(t, 3, a.ID)
	assert.Equal(t, 4, b.ID)
	assert.Equal(t, models.RoleUser, a.Role, "role defaults to user")
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestMemoryStore_CreateThenGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	created, err := s.Create(createFields("Alice Smith", "alice@example.com", 30))
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Create(createFields("Other Admin", "admin@example.com", 50))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Case-insensitive collision.
	_, err = s.Create(createFields("Other Admin", "ADMIN@EXAMPLE.COM", 50))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Failed create leaves the store unchanged.
	users, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMemoryStore_ConcurrentCreateSameEmail(t *testing.T) {
	s := NewMemoryStore()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(createFields("Race User", "race@example.com", 33))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent create must win")
}

func TestMemoryStore_ConcurrentCreateDistinctEmails(t *testing.T) {
	s := NewMemoryStore()

	const attempts = 16
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(createFields("Bulk User", fmt.Sprintf("bulk%d@example.com", i), 21))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := s.List("")
	require.NoError(t, err)
	require.Len(t, users, 2+attempts)

	seen := map[int]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "id %d assigned twice", u.ID)
		seen[u.ID] = true
	}
}

func TestMemoryStore_GetByEmail(t *testing.T) {
	s := NewMemoryStore()

	user, err := s.GetByEmail("ADMIN@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = s.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListRoleFilter(t *testing.T) {
	s := NewMemoryStore()

	admins, err := s.List(models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@example.com", admins[0].Email)

	regulars, err := s.List(models.RoleUser)
	require.NoError(t, err)
	require.Len(t, regulars, 1)
	assert.Equal(t, "john@example.com", regulars[0].Email)
}

func TestMemoryStore_UpdatePartial(t *testing.T) {
	s := NewMemoryStore()

	age := 26
	updated, err := s.Update(2, validation.Fields{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 26, updated.Age)
	assert.Equal(t, "John Doe", updated.Name, "unset fields are untouched")
	assert.Equal(t, "john@example.com", updated.Email)
}

func TestMemoryStore_UpdateEmptyRefreshesTimestamp(t *testing.T) {
	s := NewMemoryStore()

	before, err := s.Get(2)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := s.Update(2, validation.Fields{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt), "updated_at must refresh")
	assert.Equal(t, before.CreatedAt, updated.CreatedAt, "created_at is immutable")
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.Age, updated.Age)
	assert.Equal(t, before.Role, updated.Role)
}

func TestMemoryStore_UpdateEmailCollision(t *testing.T) {
	s := NewMemoryStore()

	email := "admin@example.com"
	_, err := s.Update(2, validation.Fields{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// A failed update leaves the record untouched.
	user, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)

	// Updating to one's own current email is allowed.
	own := "john@example.com"
	_, err = s.Update(2, validation.Fields{Email: &own})
	assert.NoError(t, err)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Update(999, validation.Fields{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()

	deleted, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", deleted.Email)

	_, err = s.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeletedIDNotReused(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Delete(2)
	require.NoError(t, err)

	created, err := s.Create(createFields("New User", "new@example.com", 22))
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID, "ids stay monotonic after deletions")
}

func TestMemoryStore_Reset(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Create(createFields("Extra User", "extra@example.com", 44))
	require.NoError(t, err)
	_, err = s.Delete(1)
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	users, err := s.List("")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID, "id sequence restarts at 1")
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "john@example.com", users[1].Email)
}
