package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/database"
)

func newSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedDefaultUser(db))
	return db
}

func TestAuthenticateDefaultCredential(t *testing.T) {
	svc := NewAuthService(newSeededDB(t))

	user, err := svc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotZero(t, user.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newSeededDB(t))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"unknown user", "nobody", "admin123"},
		{"case sensitive username", "Admin", "admin123"},
		{"case sensitive password", "admin", "Admin123"},
		{"empty pair", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.username, tt.password)
			assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
		})
	}
}

func TestSeedingTwiceKeepsOneRow(t *testing.T) {
	db := newSeededDB(t)
	require.NoError(t, database.SeedDefaultUser(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newSeededDB(t)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))
}
