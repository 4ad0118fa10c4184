package audits

import (
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// CreateAuditRequest carries the audit record payload.
type CreateAuditRequest struct {
	Activity    string    `json:"activity"`
	Responsible string    `json:"responsible"`
	AuditDate   time.Time `json:"auditDate"`
	Details     *string   `json:"details,omitempty"`
}

// AuditDTO is the wire shape of an audit row.
type AuditDTO struct {
	ID          string    `json:"id"`
	Activity    string    `json:"activity"`
	Responsible string    `json:"responsible"`
	AuditDate   time.Time `json:"auditDate"`
	Details     *string   `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToDTO shapes an audit model for responses.
func ToDTO(a *models.AuditRecord) AuditDTO {
	return AuditDTO{
		ID:          a.ID.String(),
		Activity:    a.Activity,
		Responsible: a.Responsible,
		AuditDate:   a.AuditDate,
		Details:     a.Details,
		CreatedAt:   a.CreatedAt,
	}
}

// ToDTOs shapes a slice of audit rows.
func ToDTOs(rows []models.AuditRecord) []AuditDTO {
	out := make([]AuditDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}
