package epp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/pagination"
)

type deliveriesRepository interface {
	Create(ctx context.Context, delivery *models.EppDelivery) (*models.EppDelivery, error)
	List(ctx context.Context, companyID string, workerID *uuid.UUID, limit int) ([]models.EppDelivery, error)
}

type workersFinder interface {
	FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.Worker, error)
}

// Service exposes EPP delivery operations scoped to a tenant.
type Service interface {
	List(ctx context.Context, companyID string, workerID *uuid.UUID) ([]DeliveryDTO, error)
	Create(ctx context.Context, companyID string, req CreateDeliveryRequest) (*DeliveryDTO, error)
}

type service struct {
	repo    deliveriesRepository
	workers workersFinder
	now     func() time.Time
}

// NewService builds the EPP delivery service.
func NewService(repo deliveriesRepository, workers workersFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	if workers == nil {
		return nil, fmt.Errorf("worker finder required")
	}
	return &service{repo: repo, workers: workers, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, companyID string, workerID *uuid.UUID) ([]DeliveryDTO, error) {
	rows, err := s.repo.List(ctx, companyID, workerID, pagination.NormalizeLimit(0))
	if err != nil {
		return nil, classify(err, "listing epp deliveries")
	}
	return ToDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDeliveryRequest) (*DeliveryDTO, error) {
	workerID, err := validateCreate(&req)
	if err != nil {
		return nil, err
	}

	worker, err := s.workers.FindInCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return nil, classify(err, "loading worker")
	}
	if worker.Status != enums.WorkerStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only active workers can receive EPP deliveries")
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	deliveredAt := s.now()
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}

	delivery := &models.EppDelivery{
		CompanyID:        companyID,
		WorkerID:         worker.ID,
		Equipment:        req.Equipment,
		Quantity:         quantity,
		DeliveredAt:      deliveredAt,
		DeliveredBy:      req.DeliveredBy,
		Notes:            req.Notes,
		DeliveryPhotoURL: req.DeliveryPhotoURL,
	}

	created, err := s.repo.Create(ctx, delivery)
	if err != nil {
		return nil, classify(err, "creating epp delivery")
	}

	dto := ToDTO(created)
	return &dto, nil
}

func classify(err error, msg string) error {
	if db.IsSchemaDrift(err) {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaDrift, err, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
