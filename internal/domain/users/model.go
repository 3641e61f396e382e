package users

import "time"

// User representa una cuenta que puede autenticarse y actuar como evaluador.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string

	CreatedAt time.Time
}
