package epp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

type stubRepo struct {
	rows []models.EppDelivery
}

func (s *stubRepo) Create(ctx context.Context, delivery *models.EppDelivery) (*models.EppDelivery, error) {
	delivery.ID = uuid.New()
	delivery.CreatedAt = time.Now()
	s.rows = append(s.rows, *delivery)
	return delivery, nil
}

func (s *stubRepo) List(ctx context.Context, companyID string, workerID *uuid.UUID, limit int) ([]models.EppDelivery, error) {
	var out []models.EppDelivery
	for _, row := range s.rows {
		if row.CompanyID != companyID {
			continue
		}
		if workerID != nil && row.WorkerID != *workerID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

type stubWorkers struct {
	workers map[uuid.UUID]*models.Worker
}

func (s *stubWorkers) FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.Worker, error) {
	w, ok := s.workers[id]
	if !ok || w.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

const testCompany = "fortlife-default-company"

func seedWorker(status enums.WorkerStatus) (*stubWorkers, uuid.UUID) {
	id := uuid.New()
	return &stubWorkers{workers: map[uuid.UUID]*models.Worker{
		id: {ID: id, CompanyID: testCompany, FullName: "Juan Perez", Status: status},
	}}, id
}

func TestCreateDeliveryDefaults(t *testing.T) {
	workers, workerID := seedWorker(enums.WorkerStatusActive)
	repo := &stubRepo{}
	svc, err := NewService(repo, workers)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	before := time.Now()
	req := validRequest()
	req.WorkerID = workerID.String()
	dto, err := svc.Create(context.Background(), testCompany, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if dto.Quantity != 1 {
		t.Errorf("expected quantity to default to 1, got %d", dto.Quantity)
	}
	if dto.DeliveredAt.Before(before) {
		t.Errorf("expected deliveredAt to default to now, got %v", dto.DeliveredAt)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one persisted row, got %d", len(repo.rows))
	}
}

func TestCreateDeliveryExplicitFields(t *testing.T) {
	workers, workerID := seedWorker(enums.WorkerStatusActive)
	svc, _ := NewService(&stubRepo{}, workers)

	deliveredAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	req := validRequest()
	req.WorkerID = workerID.String()
	req.Quantity = intPtr(2)
	req.DeliveredAt = &deliveredAt
	req.DeliveredBy = strPtr("Supervisor SST")

	dto, err := svc.Create(context.Background(), testCompany, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Quantity != 2 || !dto.DeliveredAt.Equal(deliveredAt) {
		t.Errorf("expected explicit quantity and deliveredAt, got %d %v", dto.Quantity, dto.DeliveredAt)
	}
	if dto.DeliveredBy == nil || *dto.DeliveredBy != "Supervisor SST" {
		t.Error("expected deliveredBy to round-trip")
	}
}

func TestCreateDeliveryWorkerNotFound(t *testing.T) {
	workers, workerID := seedWorker(enums.WorkerStatusActive)
	repo := &stubRepo{}
	svc, _ := NewService(repo, workers)

	req := validRequest()
	req.WorkerID = uuid.New().String()
	_, err := svc.Create(context.Background(), testCompany, req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	// worker in another tenant behaves as absent
	req.WorkerID = workerID.String()
	_, err = svc.Create(context.Background(), "company-b", req)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for cross-tenant worker, got %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected no persisted rows, got %d", len(repo.rows))
	}
}

func TestCreateDeliveryInactiveWorker(t *testing.T) {
	workers, workerID := seedWorker(enums.WorkerStatusInactive)
	repo := &stubRepo{}
	svc, _ := NewService(repo, workers)

	req := validRequest()
	req.WorkerID = workerID.String()
	_, err := svc.Create(context.Background(), testCompany, req)
	assertValidation(t, err, "only active workers can receive EPP deliveries")
	if len(repo.rows) != 0 {
		t.Fatalf("expected no persisted rows, got %d", len(repo.rows))
	}
}

func TestListFiltersByWorker(t *testing.T) {
	workers, workerID := seedWorker(enums.WorkerStatusActive)
	otherID := uuid.New()
	workers.workers[otherID] = &models.Worker{ID: otherID, CompanyID: testCompany, FullName: "Maria Lopez", Status: enums.WorkerStatusActive}

	repo := &stubRepo{}
	svc, _ := NewService(repo, workers)
	ctx := context.Background()

	for _, id := range []uuid.UUID{workerID, workerID, otherID} {
		req := validRequest()
		req.WorkerID = id.String()
		if _, err := svc.Create(ctx, testCompany, req); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.List(ctx, testCompany, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(all))
	}

	filtered, err := svc.List(ctx, testCompany, &workerID)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 deliveries for worker, got %d", len(filtered))
	}
}
