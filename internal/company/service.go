package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

const (
	// DefaultCompanyID is the well-known tenant every user is attached to
	// until multi-company provisioning exists.
	DefaultCompanyID   = "fortlife-default-company"
	DefaultCompanyName = "FortLife Group"
)

type companiesRepository interface {
	FindByID(ctx context.Context, id string) (*models.Company, error)
	Upsert(ctx context.Context, company *models.Company) error
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AssignCompany(ctx context.Context, userID uuid.UUID, companyID string) error
}

// Service resolves the tenant a user belongs to, lazily provisioning the
// default company and attaching the user to it on first contact.
type Service interface {
	Resolve(ctx context.Context, userID string) (string, error)
	EnsureDefaultCompany(ctx context.Context) error
}

type service struct {
	companies companiesRepository
	users     usersRepository
}

// NewService builds the tenant resolution service.
func NewService(companies companiesRepository, users usersRepository) (Service, error) {
	if companies == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{companies: companies, users: users}, nil
}

// Resolve returns the caller's company id. A user without a company is
// assigned the default company exactly once; repeated calls take the
// read-only fast path.
func (s *service) Resolve(ctx context.Context, userID string) (string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil || uid == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated, sign in again")
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	if user.CompanyID != nil && *user.CompanyID != "" {
		return *user.CompanyID, nil
	}

	if err := s.EnsureDefaultCompany(ctx); err != nil {
		return "", err
	}
	if err := s.users.AssignCompany(ctx, uid, DefaultCompanyID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning company")
	}
	return DefaultCompanyID, nil
}

// EnsureDefaultCompany upserts the well-known tenant row. Safe to call
// repeatedly; also used by the seed command.
func (s *service) EnsureDefaultCompany(ctx context.Context) error {
	err := s.companies.Upsert(ctx, &models.Company{
		ID:   DefaultCompanyID,
		Name: DefaultCompanyName,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "provisioning default company")
	}
	return nil
}
