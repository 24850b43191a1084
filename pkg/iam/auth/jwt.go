package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload
type Claims struct {
	jwt.RegisteredClaims
	Role  kernel.Role  `json:"role"`
	Email kernel.Email `json:"email"`
}

// JWTService signs HS256 access tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role kernel.Role, email kernel.Email) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        kernel.GenerateID(),
		},
		Role:  role,
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken().WithCause(err)
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken()
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Role:      claims.Role,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
