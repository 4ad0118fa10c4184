package epp

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

// validateCreate normalizes and checks a delivery payload, returning the
// parsed worker id. Fields are checked in a fixed order; the first failure
// wins.
func validateCreate(req *CreateDeliveryRequest) (uuid.UUID, error) {
	workerID, err := uuid.Parse(strings.TrimSpace(req.WorkerID))
	if err != nil || workerID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid worker is required")
	}

	req.Equipment = strings.TrimSpace(req.Equipment)
	if len(req.Equipment) < 2 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment must have at least 2 characters")
	}

	if req.Quantity != nil && *req.Quantity <= 0 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	photo := strings.TrimSpace(req.DeliveryPhotoURL)
	if photo == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery photo is required")
	}
	if !isHTTPURL(photo) {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery photo must be a valid http or https URL")
	}
	req.DeliveryPhotoURL = photo

	if req.DeliveredBy != nil {
		by := strings.TrimSpace(*req.DeliveredBy)
		if by == "" {
			req.DeliveredBy = nil
		} else {
			req.DeliveredBy = &by
		}
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}

	return workerID, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
