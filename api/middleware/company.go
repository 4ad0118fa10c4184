package middleware

import (
	"context"
	"net/http"

	"github.com/fortlifegroup/sst-backend/api/responses"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
)

type companyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// CompanyContext resolves the caller's tenant and seeds it into the request
// context. It runs after Auth, which seeds the user id.
func CompanyContext(resolver companyResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			companyID, err := resolver.Resolve(ctx, UserIDFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = context.WithValue(ctx, ctxCompanyID, companyID)
			if logg != nil {
				ctx = logg.WithCompanyID(ctx, companyID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
