package controllers

import (
	"net/http"

	"github.com/fortlifegroup/sst-backend/api/responses"
	"github.com/fortlifegroup/sst-backend/internal/dashboard"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
)

// DashboardSummary aggregates the tenant's monthly activity. The month is
// taken from ?month=YYYY-MM and defaults to the current one.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		companyID, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), companyID, r.URL.Query().Get("month"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
