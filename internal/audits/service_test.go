package audits

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

type stubRepo struct {
	rows []models.AuditRecord
}

func (s *stubRepo) Create(ctx context.Context, audit *models.AuditRecord) (*models.AuditRecord, error) {
	audit.ID = uuid.New()
	audit.CreatedAt = time.Now()
	s.rows = append(s.rows, *audit)
	return audit, nil
}

func (s *stubRepo) List(ctx context.Context, companyID string, limit int) ([]models.AuditRecord, error) {
	var out []models.AuditRecord
	for _, row := range s.rows {
		if row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

const testCompany = "fortlife-default-company"

func strPtr(s string) *string { return &s }

func assertValidation(t *testing.T, err error, want string) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != want {
		t.Fatalf("expected message %q, got %q", want, typed.Message())
	}
}

func TestCreateAuditValidation(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	auditDate := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	_, err = svc.Create(ctx, testCompany, CreateAuditRequest{Activity: " ab ", Responsible: "Jefe SST", AuditDate: auditDate})
	assertValidation(t, err, "activity must have at least 3 characters")

	_, err = svc.Create(ctx, testCompany, CreateAuditRequest{Activity: "Inspeccion de andamios", Responsible: "ab", AuditDate: auditDate})
	assertValidation(t, err, "responsible must have at least 3 characters")

	_, err = svc.Create(ctx, testCompany, CreateAuditRequest{Activity: "Inspeccion de andamios", Responsible: "Jefe SST"})
	assertValidation(t, err, "audit date is required")

	if len(repo.rows) != 0 {
		t.Fatalf("expected no persisted rows, got %d", len(repo.rows))
	}
}

func TestCreateAuditPersists(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)
	auditDate := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	dto, err := svc.Create(context.Background(), testCompany, CreateAuditRequest{
		Activity:    "  Inspeccion de andamios  ",
		Responsible: "Jefe SST",
		AuditDate:   auditDate,
		Details:     strPtr("   "),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.Activity != "Inspeccion de andamios" {
		t.Errorf("expected trimmed activity, got %q", dto.Activity)
	}
	if dto.Details != nil {
		t.Error("expected blank details to normalize to nil")
	}
	if !dto.AuditDate.Equal(auditDate) {
		t.Errorf("expected audit date to round-trip, got %v", dto.AuditDate)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one persisted row, got %d", len(repo.rows))
	}
}

func TestListScopedToTenant(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo)
	ctx := context.Background()
	auditDate := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	for _, company := range []string{testCompany, testCompany, "company-b"} {
		if _, err := svc.Create(ctx, company, CreateAuditRequest{Activity: "Charla de 5 minutos", Responsible: "Jefe SST", AuditDate: auditDate}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := svc.List(ctx, testCompany)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 audits for tenant, got %d", len(rows))
	}
}
