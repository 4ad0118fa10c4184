package workers

import (
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// CreateWorkerRequest carries the worker registration payload.
type CreateWorkerRequest struct {
	FullName                    string     `json:"fullName"`
	DNI                         *string    `json:"dni,omitempty"`
	Status                      *string    `json:"status,omitempty"`
	InitialSSTTrainingCompleted bool       `json:"initialSstTrainingCompleted"`
	InitialSSTTrainingDate      *time.Time `json:"initialSstTrainingDate,omitempty"`
	InitialSSTTrainingPhotoURL  *string    `json:"initialSstTrainingPhotoUrl,omitempty"`
}

// UpdateWorkerRequest is a partial patch; only present fields are applied.
// An explicit JSON null on the photo field decodes the same as an absent key,
// so the controller inspects the raw body and sets PhotoURLExplicitNull.
type UpdateWorkerRequest struct {
	FullName                    *string    `json:"fullName,omitempty"`
	DNI                         *string    `json:"dni,omitempty"`
	Status                      *string    `json:"status,omitempty"`
	InitialSSTTrainingCompleted *bool      `json:"initialSstTrainingCompleted,omitempty"`
	InitialSSTTrainingDate      *time.Time `json:"initialSstTrainingDate,omitempty"`
	InitialSSTTrainingPhotoURL  *string    `json:"initialSstTrainingPhotoUrl,omitempty"`

	// The explicit-null flags are set by the controller when the patch
	// carries a literal JSON null rather than omitting the key, which
	// clears the stored value instead of leaving it untouched.
	PhotoURLExplicitNull     bool `json:"-"`
	DNIExplicitNull          bool `json:"-"`
	TrainingDateExplicitNull bool `json:"-"`
}

// WorkerDTO is the wire shape of a worker row.
type WorkerDTO struct {
	ID                          string     `json:"id"`
	WorkerCode                  int        `json:"workerCode"`
	FullName                    string     `json:"fullName"`
	DNI                         *string    `json:"dni,omitempty"`
	Status                      string     `json:"status"`
	InitialSSTTrainingCompleted bool       `json:"initialSstTrainingCompleted"`
	InitialSSTTrainingDate      *time.Time `json:"initialSstTrainingDate,omitempty"`
	InitialSSTTrainingPhotoURL  *string    `json:"initialSstTrainingPhotoUrl,omitempty"`
	CreatedAt                   time.Time  `json:"createdAt"`
	UpdatedAt                   time.Time  `json:"updatedAt"`
}

// ToDTO shapes a worker model for responses.
func ToDTO(w *models.Worker) WorkerDTO {
	return WorkerDTO{
		ID:                          w.ID.String(),
		WorkerCode:                  w.WorkerCode,
		FullName:                    w.FullName,
		DNI:                         w.DNI,
		Status:                      w.Status.String(),
		InitialSSTTrainingCompleted: w.InitialSSTTrainingCompleted,
		InitialSSTTrainingDate:      w.InitialSSTTrainingDate,
		InitialSSTTrainingPhotoURL:  w.TrainingPhotoURL,
		CreatedAt:                   w.CreatedAt,
		UpdatedAt:                   w.UpdatedAt,
	}
}

// ToDTOs shapes a slice of worker rows.
func ToDTOs(rows []models.Worker) []WorkerDTO {
	out := make([]WorkerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}

func defaultStatus(raw *string) (enums.WorkerStatus, error) {
	if raw == nil || *raw == "" {
		return enums.WorkerStatusActive, nil
	}
	return enums.ParseWorkerStatus(*raw)
}
