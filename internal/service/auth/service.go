package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/auth"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	contractorRepo contractor.ContractorRepository
	tokenRepo      auth.TokenRepository
	jwtService     jwt.Service
	now            func() time.Time
}

func NewAuthService(contractorRepository contractor.ContractorRepository, tokenRepository auth.TokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		contractorRepo: contractorRepository,
		tokenRepo:      tokenRepository,
		jwtService:     jwtService,
		now:            time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. New contractors start on a free trial.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.contractorRepo.Create(ctx, contractor.Contractor{
		CompanyName:        req.CompanyName,
		Email:              req.Email,
		PasswordHash:       passwordHash,
		Phone:              req.Phone,
		SubscriptionPlan:   contractor.PlanFree,
		SubscriptionStatus: contractor.SubscriptionTrial,
		TrialEndsAt:        a.now().Add(contractor.TrialPeriod),
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("contractor registered", "contractor_id", created.ID)
	return a.issueToken(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	found, err := a.contractorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, contractor.ErrContractorNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get contractor by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(found)
}

// Logout implements auth.AuthService. The revocation is kept in memory for request checks
// and persisted so it survives a restart.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return auth.ErrInvalidToken
	}

	hash := a.jwtService.RevokeToken(token, expiresAt)
	if err := a.tokenRepo.Revoke(ctx, hash, expiresAt); err != nil {
		return fmt.Errorf("failed to persist revoked token: %w", err)
	}
	return nil
}

func (a *AuthServiceImpl) issueToken(c contractor.Contractor) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(c.ID, c.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Contractor:  c.ToResponse(),
	}, nil
}
