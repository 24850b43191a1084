package kernel

import (
	"net/mail"
	"strings"
)

// Role is the fixed role a user registers with
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStudent
}

func (r Role) String() string { return string(r) }

// Email is a normalized (trimmed, lower-cased) address
type Email string

func NewEmail(raw string) Email {
	return Email(strings.ToLower(strings.TrimSpace(raw)))
}

func (e Email) String() string { return string(e) }

func (e Email) IsValid() bool {
	if e == "" {
		return false
	}
	_, err := mail.ParseAddress(string(e))
	return err == nil
}

// BlobRef points at an object in the blob store
type BlobRef string

func (b BlobRef) String() string { return string(b) }
func (b BlobRef) IsEmpty() bool  { return string(b) == "" }
