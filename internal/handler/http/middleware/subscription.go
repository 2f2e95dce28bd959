package middleware

import (
	"net/http"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
)

// SubscriptionMiddleware provides middleware functions for subscription checks
type SubscriptionMiddleware struct {
	contractorService contractor.ContractorService
}

func NewSubscriptionMiddleware(contractorService contractor.ContractorService) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		contractorService: contractorService,
	}
}

// RequireActiveSubscription leaves an expired contractor read-only.
// Safe methods always pass so existing records and reports stay reachable.
func (m *SubscriptionMiddleware) RequireActiveSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isReadOnly(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		profile, err := m.contractorService.GetProfile(r.Context(), TenantID(r.Context()))
		if err != nil {
			response.HandleError(w, err)
			return
		}

		// A lapsed trial is rejected before the scheduler gets to flip its status.
		status := contractor.SubscriptionStatus(profile.SubscriptionStatus)
		lapsed := status == contractor.SubscriptionTrial && !time.Now().Before(profile.TrialEndsAt)
		if status == contractor.SubscriptionExpired || lapsed {
			response.HandleError(w, contractor.ErrSubscriptionExpired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
