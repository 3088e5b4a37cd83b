package model

import (
	"strings"
	"time"
)

// User is a lazily created profile row keyed by email.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the authenticated caller, resolved once by the auth
// middleware and passed explicitly into every service operation.
type Identity struct {
	Email string
	Name  string
}

// DisplayName returns the identity's name, falling back to the local part
// of the email, then to a generic label.
func (id Identity) DisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	if local, _, _ := strings.Cut(id.Email, "@"); local != "" {
		return local
	}
	return "AI User"
}
