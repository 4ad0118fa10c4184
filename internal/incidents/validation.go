package incidents

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/fortlifegroup/sst-backend/pkg/enums"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

// validateRequest normalizes and checks an incident payload, returning the
// parsed worker id. Create and update share the same rules; fields are
// checked in a fixed order and the first failure wins.
func validateRequest(req *IncidentRequest) (uuid.UUID, error) {
	workerID, err := uuid.Parse(strings.TrimSpace(req.WorkerID))
	if err != nil || workerID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid worker is required")
	}

	req.ActivityAtTime = strings.TrimSpace(req.ActivityAtTime)
	if len(req.ActivityAtTime) < 3 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "activity at time must have at least 3 characters")
	}

	req.ProcedureApplied = strings.TrimSpace(req.ProcedureApplied)
	if len(req.ProcedureApplied) < 3 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "procedure applied must have at least 3 characters")
	}

	req.WorkerStatement = strings.TrimSpace(req.WorkerStatement)
	if len(req.WorkerStatement) < 5 {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "worker statement must have at least 5 characters")
	}

	req.ContractType = strings.TrimSpace(req.ContractType)
	if _, err := enums.ParseContractType(req.ContractType); err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "contract type is not a recognized value")
	}

	if req.HoursWorkedBefore != nil {
		hours := *req.HoursWorkedBefore
		if hours < 0 || hours > 24 {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "hours worked before must be between 0 and 24")
		}
	}

	if req.OccurredAt.IsZero() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "occurrence date is required")
	}

	if err := normalizePhoto(&req.AccidentPhotoURL, "accident photo must be a valid http or https URL"); err != nil {
		return uuid.Nil, err
	}
	if err := normalizePhoto(&req.AreaPhotoURL, "area photo must be a valid http or https URL"); err != nil {
		return uuid.Nil, err
	}
	if err := normalizePhoto(&req.WorkTypePhotoURL, "work type photo must be a valid http or https URL"); err != nil {
		return uuid.Nil, err
	}

	if req.CompanyObservations != nil {
		obs := strings.TrimSpace(*req.CompanyObservations)
		if obs == "" {
			req.CompanyObservations = nil
		} else {
			req.CompanyObservations = &obs
		}
	}

	return workerID, nil
}

// normalizePhoto trims the slot in place; a blank value becomes nil and a
// non-empty value must parse as an http/https URL.
func normalizePhoto(slot **string, msg string) error {
	if *slot == nil {
		return nil
	}
	raw := strings.TrimSpace(**slot)
	if raw == "" {
		*slot = nil
		return nil
	}
	if !isHTTPURL(raw) {
		return pkgerrors.New(pkgerrors.CodeValidation, msg)
	}
	*slot = &raw
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
