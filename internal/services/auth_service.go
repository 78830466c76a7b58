package services

import (
	"database/sql"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/models"
)

// AuthServiceProvider defines the interface for the login gate.
type AuthServiceProvider interface {
	Authenticate(username, password string) (models.User, error)
}

// AuthService checks submitted credentials against the users table.
//
// Credentials are compared in plain text by exact, case-sensitive match.
// That is the documented behavior of the system this replaces; it is a
// known limitation, not an oversight.
type AuthService struct {
	db *sql.DB
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{db: db}
}

// Authenticate returns the matching user, or an authentication error when
// no row carries exactly this username/password pair.
func (s *AuthService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, created_at FROM users WHERE username = ? AND password = ?",
		username, password,
	)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.Authentication("invalid username or password")
		}
		return models.User{}, err
	}
	return user, nil
}
