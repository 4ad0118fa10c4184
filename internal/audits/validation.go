package audits

import (
	"strings"

	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

// validateCreate normalizes and checks an audit payload. Fields are checked
// in a fixed order; the first failure wins.
func validateCreate(req *CreateAuditRequest) error {
	req.Activity = strings.TrimSpace(req.Activity)
	if len(req.Activity) < 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "activity must have at least 3 characters")
	}

	req.Responsible = strings.TrimSpace(req.Responsible)
	if len(req.Responsible) < 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "responsible must have at least 3 characters")
	}

	if req.AuditDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "audit date is required")
	}

	if req.Details != nil {
		details := strings.TrimSpace(*req.Details)
		if details == "" {
			req.Details = nil
		} else {
			req.Details = &details
		}
	}

	return nil
}
