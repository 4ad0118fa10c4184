package incidents

import (
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// IncidentRequest carries the full incident form. Update uses the same
// shape: the photo slots sent in the payload replace the stored attachment
// set, so omitting a photo removes that attachment kind.
type IncidentRequest struct {
	WorkerID            string    `json:"workerId"`
	OccurredAt          time.Time `json:"occurredAt"`
	ActivityAtTime      string    `json:"activityAtTime"`
	ContractType        string    `json:"contractType"`
	HoursWorkedBefore   *float64  `json:"hoursWorkedBefore,omitempty"`
	ProcedureApplied    string    `json:"procedureApplied"`
	WorkerStatement     string    `json:"workerStatement"`
	CompanyObservations *string   `json:"companyObservations,omitempty"`
	AccidentPhotoURL    *string   `json:"accidentPhotoUrl,omitempty"`
	AreaPhotoURL        *string   `json:"areaPhotoUrl,omitempty"`
	WorkTypePhotoURL    *string   `json:"workTypePhotoUrl,omitempty"`
}

// IncidentDTO is the wire shape of an incident row with its photo slots
// flattened.
type IncidentDTO struct {
	ID                  string    `json:"id"`
	WorkerID            string    `json:"workerId"`
	OccurredAt          time.Time `json:"occurredAt"`
	ActivityAtTime      string    `json:"activityAtTime"`
	ContractType        string    `json:"contractType"`
	HoursWorkedBefore   *float64  `json:"hoursWorkedBefore,omitempty"`
	ProcedureApplied    string    `json:"procedureApplied"`
	WorkerStatement     string    `json:"workerStatement"`
	CompanyObservations *string   `json:"companyObservations,omitempty"`
	AccidentPhotoURL    *string   `json:"accidentPhotoUrl,omitempty"`
	AreaPhotoURL        *string   `json:"areaPhotoUrl,omitempty"`
	WorkTypePhotoURL    *string   `json:"workTypePhotoUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ToDTO shapes an incident model for responses.
func ToDTO(in *models.IncidentRecord) IncidentDTO {
	dto := IncidentDTO{
		ID:                  in.ID.String(),
		WorkerID:            in.WorkerID.String(),
		OccurredAt:          in.OccurredAt,
		ActivityAtTime:      in.ActivityAtTime,
		ContractType:        in.ContractType.String(),
		HoursWorkedBefore:   in.HoursWorkedBefore,
		ProcedureApplied:    in.ProcedureApplied,
		WorkerStatement:     in.WorkerStatement,
		CompanyObservations: in.CompanyObservations,
		CreatedAt:           in.CreatedAt,
		UpdatedAt:           in.UpdatedAt,
	}
	for i := range in.Attachments {
		att := &in.Attachments[i]
		url := att.FileURL
		switch att.Kind {
		case enums.AttachmentKindAccident:
			dto.AccidentPhotoURL = &url
		case enums.AttachmentKindArea:
			dto.AreaPhotoURL = &url
		case enums.AttachmentKindWorkType:
			dto.WorkTypePhotoURL = &url
		}
	}
	return dto
}

// ToDTOs shapes a slice of incident rows.
func ToDTOs(rows []models.IncidentRecord) []IncidentDTO {
	out := make([]IncidentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}
