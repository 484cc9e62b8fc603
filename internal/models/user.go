package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is the authenticated caller as resolved from a verified token.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the fields of u that may be serialized to clients.
func (u *User) Public() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
