package audits

import (
	"context"
	"fmt"

	"github.com/fortlifegroup/sst-backend/pkg/db"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
	"github.com/fortlifegroup/sst-backend/pkg/pagination"
)

type auditsRepository interface {
	Create(ctx context.Context, audit *models.AuditRecord) (*models.AuditRecord, error)
	List(ctx context.Context, companyID string, limit int) ([]models.AuditRecord, error)
}

// Service exposes audit record operations scoped to a tenant.
type Service interface {
	List(ctx context.Context, companyID string) ([]AuditDTO, error)
	Create(ctx context.Context, companyID string, req CreateAuditRequest) (*AuditDTO, error)
}

type service struct {
	repo auditsRepository
}

// NewService builds the audit service.
func NewService(repo auditsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, companyID string) ([]AuditDTO, error) {
	rows, err := s.repo.List(ctx, companyID, pagination.NormalizeLimit(0))
	if err != nil {
		return nil, classify(err, "listing audits")
	}
	return ToDTOs(rows), nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateAuditRequest) (*AuditDTO, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	audit := &models.AuditRecord{
		CompanyID:   companyID,
		Activity:    req.Activity,
		Responsible: req.Responsible,
		AuditDate:   req.AuditDate,
		Details:     req.Details,
	}

	created, err := s.repo.Create(ctx, audit)
	if err != nil {
		return nil, classify(err, "creating audit")
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
