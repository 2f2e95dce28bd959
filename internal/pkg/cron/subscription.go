package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/auth"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
)

const (
	JobExpireTrials        = "expire_trial_subscriptions"
	JobPurgeRevokedTokens  = "purge_revoked_tokens"
	revokedTokensPurgeRate = 6 * time.Hour
)

// SubscriptionJobs keeps contractor accounts and their sessions tidy
type SubscriptionJobs struct {
	contractorService contractor.ContractorService
	tokenRepo         auth.TokenRepository
	jwtService        jwt.Service
	now               func() time.Time
}

func NewSubscriptionJobs(contractorService contractor.ContractorService, tokenRepo auth.TokenRepository, jwtService jwt.Service) *SubscriptionJobs {
	return &SubscriptionJobs{
		contractorService: contractorService,
		tokenRepo:         tokenRepo,
		jwtService:        jwtService,
		now:               time.Now,
	}
}

// RegisterJobs checks trials every interval; revoked tokens only need an occasional sweep.
func (j *SubscriptionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(JobExpireTrials, interval, j.ExpireTrialSubscriptions)
	scheduler.AddJob(JobPurgeRevokedTokens, revokedTokensPurgeRate, j.PurgeRevokedTokens)
}

// ExpireTrialSubscriptions moves trial -> expired once trial_ends_at has passed
func (j *SubscriptionJobs) ExpireTrialSubscriptions(ctx context.Context) error {
	_, err := j.contractorService.ExpireTrials(ctx)
	return err
}

// PurgeRevokedTokens drops revocations of tokens that have expired on their own
func (j *SubscriptionJobs) PurgeRevokedTokens(ctx context.Context) error {
	now := j.now()

	purged, err := j.tokenRepo.PurgeExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	inMemory := j.jwtService.PurgeExpired(now)

	if purged > 0 || inMemory > 0 {
		slog.Info("Cron: Purged revoked tokens", "stored", purged, "in_memory", inMemory)
	}
	return nil
}
