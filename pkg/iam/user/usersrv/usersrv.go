package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/iam/auth"
	"github.com/Abraxas-365/internhub/pkg/iam/user"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/pkg/logx"
)

// UserService handles registration, login and profiles
type UserService struct {
	repo      user.Repository
	passwords auth.PasswordService
	tokens    auth.TokenService
	limiter   auth.LoginLimiter
	tokenTTL  time.Duration
}

// NewUserService creates the service. limiter may be nil.
func NewUserService(
	repo user.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
	limiter auth.LoginLimiter,
	tokenTTL time.Duration,
) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		limiter:   limiter,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new account
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	if len(req.Password) < user.MinPasswordLength {
		return nil, user.ErrWeakPassword().WithDetail("min_length", user.MinPasswordLength)
	}

	now := time.Now()
	u := &user.User{
		ID:         kernel.NewUserID(kernel.GenerateID()),
		Name:       strings.TrimSpace(req.Name),
		Email:      kernel.NewEmail(req.Email.String()),
		Role:       req.Role,
		Department: strings.TrimSpace(req.Department),
		Year:       strings.TrimSpace(req.Year),
		Bio:        req.Bio,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, u.Email)
	if err != nil && !errx.IsCode(err, user.CodeUserNotFound) {
		return nil, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}
	if existing != nil {
		return nil, user.ErrEmailTaken().WithDetail("email", u.Email.String())
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	logx.WithFields(logx.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u, nil
}

// Login verifies credentials and issues an access token
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	email := kernel.NewEmail(req.Email.String())
	if email == "" || req.Password == "" {
		return nil, auth.ErrInvalidCredentials()
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, email.String()) {
		return nil, auth.ErrTooManyAttempts()
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, auth.ErrInvalidCredentials()
		}
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	if !s.passwords.VerifyPassword(u.PasswordHash, req.Password) {
		return nil, auth.ErrInvalidCredentials()
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, email.String())
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        u,
	}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}
	return u, nil
}

// UpdateProfile changes name, bio, department and year
func (s *UserService) UpdateProfile(ctx context.Context, id kernel.UserID, req user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load user", errx.TypeInternal)
	}

	u.UpdateProfile(req)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to update user", errx.TypeInternal)
	}
	return u, nil
}

// ListStudents returns every student account
func (s *UserService) ListStudents(ctx context.Context) ([]*user.User, error) {
	students, err := s.repo.ListByRole(ctx, kernel.RoleStudent)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list students", errx.TypeInternal)
	}
	return students, nil
}
