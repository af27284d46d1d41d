package model

import "time"

// Account is a stored player login. The password survives only as a
// bcrypt hash.
type Account struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    time.Time // zero until the first login is recorded
}
