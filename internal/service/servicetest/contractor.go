package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/auth"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
)

// Accounts holds contractors and revoked token hashes.
type Accounts struct {
	mu          sync.Mutex
	contractors map[string]contractor.Contractor
	revoked     map[string]time.Time
}

func NewAccounts() *Accounts {
	return &Accounts{
		contractors: map[string]contractor.Contractor{},
		revoked:     map[string]time.Time{},
	}
}

// SetStatus overwrites a contractor's subscription status.
func (a *Accounts) SetStatus(id string, status contractor.SubscriptionStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.contractors[id]; ok {
		c.SubscriptionStatus = status
		a.contractors[id] = c
	}
}

// Revoked returns a copy of the persisted revocations.
func (a *Accounts) Revoked() map[string]time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneMap(a.revoked)
}

func (a *Accounts) Create(ctx context.Context, c contractor.Contractor) (contractor.Contractor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.contractors {
		if existing.Email == c.Email {
			return contractor.Contractor{}, contractor.ErrEmailExists
		}
	}
	c.ID = newID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	a.contractors[c.ID] = c
	return c, nil
}

func (a *Accounts) GetByID(ctx context.Context, id string) (contractor.Contractor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.contractors[id]
	if !ok {
		return contractor.Contractor{}, contractor.ErrContractorNotFound
	}
	return c, nil
}

func (a *Accounts) GetByEmail(ctx context.Context, email string) (contractor.Contractor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.contractors {
		if c.Email == email {
			return c, nil
		}
	}
	return contractor.Contractor{}, contractor.ErrContractorNotFound
}

func (a *Accounts) UpdateProfile(ctx context.Context, id string, req contractor.UpdateProfileRequest) (contractor.Contractor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.contractors[id]
	if !ok {
		return contractor.Contractor{}, contractor.ErrContractorNotFound
	}
	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	c.UpdatedAt = time.Now()
	a.contractors[id] = c
	return c, nil
}

func (a *Accounts) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var n int64
	for id, c := range a.contractors {
		if c.TrialExpired(now) {
			c.SubscriptionStatus = contractor.SubscriptionExpired
			a.contractors[id] = c
			n++
		}
	}
	return n, nil
}

// Tokens exposes the revocation half of Accounts as an auth.TokenRepository.
func (a *Accounts) Tokens() auth.TokenRepository { return tokenRepo{a} }

type tokenRepo struct{ a *Accounts }

func (r tokenRepo) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	r.a.revoked[tokenHash] = expiresAt
	return nil
}

func (r tokenRepo) ListActive(ctx context.Context, now time.Time) (map[string]time.Time, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	out := map[string]time.Time{}
	for hash, expiresAt := range r.a.revoked {
		if expiresAt.After(now) {
			out[hash] = expiresAt
		}
	}
	return out, nil
}

func (r tokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	var n int64
	for hash, expiresAt := range r.a.revoked {
		if !expiresAt.After(now) {
			delete(r.a.revoked, hash)
			n++
		}
	}
	return n, nil
}
