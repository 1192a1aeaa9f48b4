package models

import (
	"strings"
	"time"
)

// Admin is a credential document in the "admins" collection. Passwords are
// stored as bcrypt hashes and never serialized.
type Admin struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeUsername is the canonical form stored in and looked up from the
// admins collection. Login and seeding must agree on it or a seeded user can
// never authenticate.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
