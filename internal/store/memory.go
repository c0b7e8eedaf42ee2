package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apilab/users-api/internal/models"
	"github.com/apilab/users-api/internal/validation"
)

// MemoryStore keeps user records in process memory. A single RWMutex
// serializes mutations against each other and against the uniqueness check,
// so create/update/delete/reset are atomic; reads share the lock.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int]models.User
	nextID int
}

// NewMemoryStore creates a store pre-populated with the seed records.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reseedLocked()
	return s
}

// Create inserts a new record. It fails with ErrDuplicateEmail if another live
// record holds the same email (case-insensitive); otherwise it assigns the
// next sequential id, stamps both timestamps and returns the new record.
func (s *MemoryStore) Create(fields validation.Fields) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(fields)
}

// Get retrieves a record by id.
func (s *MemoryStore) Get(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// GetByEmail retrieves a record by email, matching case-insensitively.
func (s *MemoryStore) GetByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

// List returns all records, or only those matching roleFilter when it is
// non-empty. Ids are never reused, so id order is insertion order.
func (s *MemoryStore) List(roleFilter string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		if roleFilter == "" || user.Role == roleFilter {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update applies the provided fields to an existing record and refreshes
// updated_at. Updating a record to its own current email is allowed; a
// collision with a different record fails with ErrDuplicateEmail and leaves
// the record untouched.
func (s *MemoryStore) Update(id int, fields validation.Fields) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if fields.Email != nil && s.emailTakenLocked(*fields.Email, id) {
		return models.User{}, ErrDuplicateEmail
	}

	if fields.Name != nil {
		user.Name = *fields.Name
	}
	if fields.Email != nil {
		user.Email = *fields.Email
	}
	if fields.Age != nil {
		user.Age = *fields.Age
	}
	if fields.Role != nil {
		user.Role = *fields.Role
	}
	user.UpdatedAt = time.Now().UTC()

	s.users[id] = user
	return user, nil
}

// Delete removes and returns the record with the given id.
func (s *MemoryStore) Delete(id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	delete(s.users, id)
	return user, nil
}

// Reset discards all records, restarts the id sequence at 1 and restores the
// seed records.
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reseedLocked()
	return nil
}

func (s *MemoryStore) createLocked(fields validation.Fields) (models.User, error) {
	if s.emailTakenLocked(*fields.Email, 0) {
		return models.User{}, ErrDuplicateEmail
	}

	role := models.RoleUser
	if fields.Role != nil {
		role = *fields.Role
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        s.nextID,
		Name:      *fields.Name,
		Email:     *fields.Email,
		Age:       *fields.Age,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = user
	s.nextID++
	return user, nil
}

func (s *MemoryStore) emailTakenLocked(email string, excludeID int) bool {
	for id, user := range s.users {
		if id != excludeID && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) reseedLocked() {
	s.users = make(map[int]models.User)
	s.nextID = 1
	for _, seed := range seedUsers {
		s.createLocked(seed.fields())
	}
}
