package postgres

import (
	"database/sql"

	"finbot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert creates the user row or refreshes the profile fields
func (r *UserRepo) Upsert(user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET username = $2, first_name = $3, last_name = $4
	`
	_, err := r.db.Exec(query, user.UserID, user.Username, user.FirstName, user.LastName)
	return err
}

// EnsureExists creates the user row if missing, leaving an existing
// profile untouched
func (r *UserRepo) EnsureExists(userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// Get returns the user or nil when no row exists
func (r *UserRepo) Get(userID int64) (*domain.User, error) {
	var u domain.User
	var username, firstName, lastName sql.NullString

	query := `
		SELECT user_id, username, first_name, last_name, created_at
		FROM users
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&u.UserID, &username, &firstName, &lastName, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Username = username.String
	u.FirstName = firstName.String
	u.LastName = lastName.String

	return &u, nil
}
