package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/auth"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/jwt"
)

type tenantKey struct{}

// RequireTenant copies the contractor_id claim into the request context.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrTenantRequired)
			return
		}

		tenantID, ok := claims[jwt.ClaimContractorID].(string)
		if !ok || tenantID == "" {
			response.HandleError(w, auth.ErrTenantRequired)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenantID)))
	})
}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// TenantID returns the contractor the request acts for, or "" outside RequireTenant.
func TenantID(ctx context.Context) string {
	tenantID, _ := ctx.Value(tenantKey{}).(string)
	return tenantID
}
