package auth

import "time"

// Config groups authentication settings
type Config struct {
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// RateLimitConfig bounds login attempts per email within a window
type RateLimitConfig struct {
	LoginAttempts int
	Window        time.Duration
}

func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTokenTTL: 24 * time.Hour,
			Issuer:         "internhub",
		},
		RateLimit: RateLimitConfig{
			LoginAttempts: 10,
			Window:        15 * time.Minute,
		},
	}
}
