package models

import "time"

// User is a credential row for the inventory login gate. Passwords are
// stored and compared in plain text, matching the system this replaces.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // Never expose this to the client
	CreatedAt time.Time `json:"createdAt"`
}
