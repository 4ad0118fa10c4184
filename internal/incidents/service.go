package incidents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/pagination"
)

type incidentsRepository interface {
	SaveWithAttachments(ctx context.Context, incident *models.IncidentRecord, photos map[enums.AttachmentKind]string) (*models.IncidentRecord, error)
	FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.IncidentRecord, error)
	List(ctx context.Context, companyID string, limit int) ([]models.IncidentRecord, error)
	Delete(ctx context.Context, incident *models.IncidentRecord) error
}

type workersFinder interface {
	FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.Worker, error)
}

// Service exposes incident operations scoped to a tenant.
type Service interface {
	List(ctx context.Context, companyID string) ([]IncidentDTO, error)
	Create(ctx context.Context, companyID string, req IncidentRequest) (*IncidentDTO, error)
	Update(ctx context.Context, companyID string, incidentID uuid.UUID, req IncidentRequest) (*IncidentDTO, error)
	Delete(ctx context.Context, companyID string, incidentID uuid.UUID) error
}

type service struct {
	repo    incidentsRepository
	workers workersFinder
}

// NewService builds the incident service.
func NewService(repo incidentsRepository, workers workersFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("incident repository required")
	}
	if workers == nil {
		return nil, fmt.Errorf("worker finder required")
	}
	return &service{repo: repo, workers: workers}, nil
}

func (s *service) List(ctx context.Context, companyID string) ([]IncidentDTO, error) {
	rows, err := s.repo.List(ctx, companyID, pagination.NormalizeLimit(0))
	if err != nil {
		return nil, classify(err, "listing incidents")
	}
	return ToDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, companyID string, req IncidentRequest) (*IncidentDTO, error) {
	workerID, err := validateRequest(&req)
	if err != nil {
		return nil, err
	}
	if err := s.checkWorker(ctx, companyID, workerID); err != nil {
		return nil, err
	}

	incident := &models.IncidentRecord{CompanyID: companyID}
	applyRequest(incident, workerID, &req)

	saved, err := s.repo.SaveWithAttachments(ctx, incident, photoSet(&req))
	if err != nil {
		return nil, classify(err, "creating incident")
	}

	dto := ToDTO(saved)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, companyID string, incidentID uuid.UUID, req IncidentRequest) (*IncidentDTO, error) {
	workerID, err := validateRequest(&req)
	if err != nil {
		return nil, err
	}

	incident, err := s.repo.FindInCompany(ctx, companyID, incidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "incident not found")
		}
		return nil, classify(err, "loading incident")
	}

	if err := s.checkWorker(ctx, companyID, workerID); err != nil {
		return nil, err
	}

	applyRequest(incident, workerID, &req)
	saved, err := s.repo.SaveWithAttachments(ctx, incident, photoSet(&req))
	if err != nil {
		return nil, classify(err, "updating incident")
	}

	dto := ToDTO(saved)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, companyID string, incidentID uuid.UUID) error {
	incident, err := s.repo.FindInCompany(ctx, companyID, incidentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "incident not found")
		}
		return classify(err, "loading incident")
	}
	if err := s.repo.Delete(ctx, incident); err != nil {
		return classify(err, "deleting incident")
	}
	return nil
}

func (s *service) checkWorker(ctx context.Context, companyID string, workerID uuid.UUID) error {
	if _, err := s.workers.FindInCompany(ctx, companyID, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return classify(err, "loading worker")
	}
	return nil
}

func applyRequest(incident *models.IncidentRecord, workerID uuid.UUID, req *IncidentRequest) {
	incident.WorkerID = workerID
	incident.OccurredAt = req.OccurredAt
	incident.ActivityAtTime = req.ActivityAtTime
	incident.ContractType = enums.ContractType(req.ContractType)
	incident.HoursWorkedBefore = req.HoursWorkedBefore
	incident.ProcedureApplied = req.ProcedureApplied
	incident.WorkerStatement = req.WorkerStatement
	incident.CompanyObservations = req.CompanyObservations
}

// photoSet collects the photo slots present in the payload keyed by
// attachment kind.
func photoSet(req *IncidentRequest) map[enums.AttachmentKind]string {
	photos := make(map[enums.AttachmentKind]string, 3)
	if req.AccidentPhotoURL != nil {
		photos[enums.AttachmentKindAccident] = *req.AccidentPhotoURL
	}
	if req.AreaPhotoURL != nil {
		photos[enums.AttachmentKindArea] = *req.AreaPhotoURL
	}
	if req.WorkTypePhotoURL != nil {
		photos[enums.AttachmentKindWorkType] = *req.WorkTypePhotoURL
	}
	return photos
}

func classify(err error, msg string) error {
	if db.IsSchemaDrift(err) {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaDrift, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
