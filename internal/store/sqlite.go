package store

import (
	"database/sql"
	"sync"
	"time"

	"github.com/apilab/users-api/internal/models"
	"github.com/apilab/users-api/internal/validation"
)

// timeFormat is how timestamps are written to the database.
const timeFormat = time.RFC3339Nano

// SQLiteStore persists user records in a SQLite database. The same locking
// discipline as MemoryStore applies: one mutex serializes mutations so the
// uniqueness check and the write are atomic, and the UNIQUE NOCASE index on
// email backs that check at the schema level.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore wraps an open, migrated database. An empty users table is
// populated with the seed records.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.seedLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SQLiteStore) Create(fields validation.Fields) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(fields)
}

func (s *SQLiteStore) Get(id int) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, name, email, age, role, created_at, updated_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *SQLiteStore) GetByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, name, email, age, role, created_at, updated_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (s *SQLiteStore) List(roleFilter string) ([]models.User, error) {
	query := "SELECT id, name, email, age, role, created_at, updated_at FROM users ORDER BY id"
	args := []any{}
	if roleFilter != "" {
		query = "SELECT id, name, email, age, role, created_at, updated_at FROM users WHERE role = ? ORDER BY id"
		args = append(args, roleFilter)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) Update(id int, fields validation.Fields) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}
	if fields.Email != nil {
		taken, err := s.emailTaken(*fields.Email, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrDuplicateEmail
		}
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

	_, err = s.db.Exec(
		"UPDATE users SET name = ?, email = ?, age = ?, role = ?, updated_at = ? WHERE id = ?",
		user.Name, user.Email, user.Age, user.Role, user.UpdatedAt.Format(timeFormat), user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *SQLiteStore) Delete(id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}
	if _, err := s.db.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Reset clears the table, restarts the id sequence at 1 and restores the seed
// records.
func (s *SQLiteStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM users"); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'"); err != nil {
		return err
	}
	return s.seedLocked()
}

func (s *SQLiteStore) createLocked(fields validation.Fields) (models.User, error) {
	taken, err := s.emailTaken(*fields.Email, 0)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicateEmail
	}

	role := models.RoleUser
	if fields.Role != nil {
		role = *fields.Role
	}
	now := time.Now().UTC()

	res, err := s.db.Exec(
		"INSERT INTO users(name, email, age, role, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		*fields.Name, *fields.Email, *fields.Age, role,
		now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:        int(id),
		Name:      *fields.Name,
		Email:     *fields.Email,
		Age:       *fields.Age,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// emailTaken reports whether a record other than excludeID holds the email.
// The email column is COLLATE NOCASE, so the comparison is case-insensitive.
func (s *SQLiteStore) emailTaken(email string, excludeID int) (bool, error) {
	var id int
	err := s.db.QueryRow(
		"SELECT id FROM users WHERE email = ? AND id != ?", email, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) seedLocked() error {
	for _, seed := range seedUsers {
		if _, err := s.createLocked(seed.fields()); err != nil {
			return err
		}
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (models.User, error) {
	var user models.User
	var createdAt, updatedAt string
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Age, &user.Role, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	if user.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return models.User{}, err
	}
	if user.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}
