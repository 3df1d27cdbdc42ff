package core

import "time"

// User owns transactions and budgets. PasswordHash is opaque to the
// core; only the auth package produces and checks it.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
