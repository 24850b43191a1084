package user

import "github.com/Abraxas-365/internhub/pkg/kernel"

type RegisterRequest struct {
	Name       string       `json:"name"`
	Email      kernel.Email `json:"email"`
	Password   string       `json:"password"`
	Role       kernel.Role  `json:"role"`
	Department string       `json:"department,omitempty"`
	Year       string       `json:"year,omitempty"`
	Bio        string       `json:"bio,omitempty"`
}

type LoginRequest struct {
	Email    kernel.Email `json:"email"`
	Password string       `json:"password"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Department *string `json:"department,omitempty"`
	Year       *string `json:"year,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
