package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fortlifegroup/sst-backend/api/responses"
	"github.com/fortlifegroup/sst-backend/api/validators"
	"github.com/fortlifegroup/sst-backend/internal/epp"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/logger"
)

// ListEppDeliveries returns the tenant's deliveries, optionally narrowed to
// one worker via ?workerId=.
func ListEppDeliveries(svc epp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "epp service unavailable"))
			return
		}

		companyID, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var workerID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("workerId")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid worker id"))
				return
			}
			workerID = &id
		}

		rows, err := svc.List(r.Context(), companyID, workerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// CreateEppDelivery logs an equipment hand-off with its photo evidence.
func CreateEppDelivery(svc epp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "epp service unavailable"))
			return
		}

		companyID, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req epp.CreateDeliveryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), companyID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
