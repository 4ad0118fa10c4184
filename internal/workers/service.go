package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/pagination"
)

type workersRepository interface {
	CreateWithNextCode(ctx context.Context, worker *models.Worker) (*models.Worker, error)
	FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.Worker, error)
	List(ctx context.Context, companyID string, limit int) ([]models.Worker, error)
	DNITakenByOther(ctx context.Context, companyID, dni string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, worker *models.Worker) error
}

// Service exposes worker registry operations scoped to a tenant.
type Service interface {
	List(ctx context.Context, companyID string) ([]WorkerDTO, error)
	Create(ctx context.Context, companyID string, req CreateWorkerRequest) (*WorkerDTO, error)
	Update(ctx context.Context, companyID string, workerID uuid.UUID, req UpdateWorkerRequest) (*WorkerDTO, error)
}

type service struct {
	repo workersRepository
}

// NewService builds the worker service.
func NewService(repo workersRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("worker repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, companyID string) ([]WorkerDTO, error) {
	rows, err := s.repo.List(ctx, companyID, pagination.NormalizeLimit(0))
	if err != nil {
		return nil, classify(err, "listing workers")
	}
	return ToDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateWorkerRequest) (*WorkerDTO, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	status, _ := defaultStatus(req.Status)
	worker := &models.Worker{
		CompanyID:                   companyID,
		FullName:                    req.FullName,
		DNI:                         req.DNI,
		Status:                      status,
		InitialSSTTrainingCompleted: req.InitialSSTTrainingCompleted,
		InitialSSTTrainingDate:      req.InitialSSTTrainingDate,
		TrainingPhotoURL:            req.InitialSSTTrainingPhotoURL,
	}

	created, err := s.repo.CreateWithNextCode(ctx, worker)
	if err != nil {
		if errors.Is(err, ErrDuplicateDNI) || db.IsUniqueViolation(err, "dni") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a worker with this dni already exists")
		}
		return nil, classify(err, "creating worker")
	}

	dto := ToDTO(created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, companyID string, workerID uuid.UUID, req UpdateWorkerRequest) (*WorkerDTO, error) {
	if err := validateUpdate(&req); err != nil {
		return nil, err
	}

	worker, err := s.repo.FindInCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return nil, classify(err, "loading worker")
	}

	if req.DNI != nil && (worker.DNI == nil || *worker.DNI != *req.DNI) {
		taken, err := s.repo.DNITakenByOther(ctx, companyID, *req.DNI, worker.ID)
		if err != nil {
			return nil, classify(err, "checking dni")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a worker with this dni already exists")
		}
	}

	if req.FullName != nil {
		worker.FullName = *req.FullName
	}
	if req.DNI != nil {
		worker.DNI = req.DNI
	} else if req.DNIExplicitNull {
		worker.DNI = nil
	}
	if req.Status != nil {
		status, _ := defaultStatus(req.Status)
		worker.Status = status
	}
	if req.InitialSSTTrainingCompleted != nil {
		worker.InitialSSTTrainingCompleted = *req.InitialSSTTrainingCompleted
	}
	if req.InitialSSTTrainingDate != nil {
		worker.InitialSSTTrainingDate = req.InitialSSTTrainingDate
	} else if req.TrainingDateExplicitNull {
		worker.InitialSSTTrainingDate = nil
	}
	if req.InitialSSTTrainingPhotoURL != nil {
		worker.TrainingPhotoURL = req.InitialSSTTrainingPhotoURL
	} else if req.PhotoURLExplicitNull {
		worker.TrainingPhotoURL = nil
	}

	if err := s.repo.Update(ctx, worker); err != nil {
		if db.IsUniqueViolation(err, "dni") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a worker with this dni already exists")
		}
		return nil, classify(err, "saving worker")
	}

	dto := ToDTO(worker)
	return &dto, nil
}

func classify(err error, msg string) error {
	if db.IsSchemaDrift(err) {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaDrift, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
