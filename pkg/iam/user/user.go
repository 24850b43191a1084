package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/pkg/kernel"
)

const MinPasswordLength = 6

// User is an account on the platform. The role is fixed at registration.
type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Email        kernel.Email  `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         kernel.Role   `db:"role" json:"role"`
	Department   string        `db:"department" json:"department,omitempty"`
	Year         string        `db:"year" json:"year,omitempty"`
	Bio          string        `db:"bio" json:"bio"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == kernel.RoleAdmin
}

func (u *User) IsStudent() bool {
	return u.Role == kernel.RoleStudent
}

// Validate checks the fields required for the user's role
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidRequest().WithDetail("field", "name")
	}
	if !u.Email.IsValid() {
		return ErrInvalidRequest().WithDetail("field", "email")
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole().WithDetail("role", u.Role)
	}
	if u.IsStudent() && (strings.TrimSpace(u.Department) == "" || strings.TrimSpace(u.Year) == "") {
		return ErrMissingStudentFields()
	}
	return nil
}

// UpdateProfile applies non-nil fields. Role and email are never changed here.
func (u *User) UpdateProfile(req UpdateProfileRequest) {
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Department != nil {
		u.Department = strings.TrimSpace(*req.Department)
	}
	if req.Year != nil {
		u.Year = strings.TrimSpace(*req.Year)
	}
	u.UpdatedAt = time.Now()
}
