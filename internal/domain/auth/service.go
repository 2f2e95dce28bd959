package auth

import (
	"context"
	"time"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

// TokenRepository persists revoked access tokens so a restart does not resurrect them.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error
	ListActive(ctx context.Context, now time.Time) (map[string]time.Time, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
