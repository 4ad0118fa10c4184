package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/fortlifegroup/sst-backend/pkg/db"
	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

// SummaryDTO aggregates one month of tenant activity plus outstanding
// follow-ups.
type SummaryDTO struct {
	Month          string            `json:"month"`
	Workers        int64             `json:"workers"`
	EppDeliveries  int64             `json:"eppDeliveries"`
	Audits         int64             `json:"audits"`
	Incidents      int64             `json:"incidents"`
	PendingActions PendingActionsDTO `json:"pendingActions"`
}

// PendingActionsDTO counts records that still need attention.
type PendingActionsDTO struct {
	WorkersWithoutTraining      int64 `json:"workersWithoutTraining"`
	IncidentsWithoutAttachments int64 `json:"incidentsWithoutAttachments"`
}

type countsRepository interface {
	CountWorkers(ctx context.Context, companyID string, start, end time.Time) (int64, error)
	CountEppDeliveries(ctx context.Context, companyID string, start, end time.Time) (int64, error)
	CountAudits(ctx context.Context, companyID string, start, end time.Time) (int64, error)
	CountIncidents(ctx context.Context, companyID string, start, end time.Time) (int64, error)
	CountWorkersWithoutTraining(ctx context.Context, companyID string) (int64, error)
	CountIncidentsWithoutAttachments(ctx context.Context, companyID string) (int64, error)
}

// Service exposes the dashboard aggregation.
type Service interface {
	Summary(ctx context.Context, companyID, month string) (*SummaryDTO, error)
}

type service struct {
	repo countsRepository
	now  func() time.Time
}

// NewService builds the dashboard service.
func NewService(repo countsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Summary runs all count queries concurrently and waits for every one; a
// single failure fails the whole aggregation.
func (s *service) Summary(ctx context.Context, companyID, month string) (*SummaryDTO, error) {
	start, end, label, err := s.monthWindow(month)
	if err != nil {
		return nil, err
	}

	out := &SummaryDTO{Month: label}
	counts := []struct {
		dst   *int64
		query func(context.Context) (int64, error)
	}{
		{&out.Workers, func(ctx context.Context) (int64, error) {
			return s.repo.CountWorkers(ctx, companyID, start, end)
		}},
		{&out.EppDeliveries, func(ctx context.Context) (int64, error) {
			return s.repo.CountEppDeliveries(ctx, companyID, start, end)
		}},
		{&out.Audits, func(ctx context.Context) (int64, error) {
			return s.repo.CountAudits(ctx, companyID, start, end)
		}},
		{&out.Incidents, func(ctx context.Context) (int64, error) {
			return s.repo.CountIncidents(ctx, companyID, start, end)
		}},
		{&out.PendingActions.WorkersWithoutTraining, func(ctx context.Context) (int64, error) {
			return s.repo.CountWorkersWithoutTraining(ctx, companyID)
		}},
		{&out.PendingActions.IncidentsWithoutAttachments, func(ctx context.Context) (int64, error) {
			return s.repo.CountIncidentsWithoutAttachments(ctx, companyID)
		}},
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, c := range counts {
		wg.Add(1)
		go func(dst *int64, query func(context.Context) (int64, error)) {
			defer wg.Done()
			n, err := query(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return
			}
			*dst = n
		}(c.dst, c.query)
	}
	wg.Wait()

	if errs != nil {
		if db.IsSchemaDrift(errs) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeSchemaDrift, errs, "aggregating dashboard")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "aggregating dashboard")
	}
	return out, nil
}

// monthWindow resolves the requested YYYY-MM month, defaulting to the
// current one, into a UTC [start, end) window.
func (s *service) monthWindow(month string) (start, end time.Time, label string, err error) {
	month = strings.TrimSpace(month)
	if month == "" {
		now := s.now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		start, err = time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, "", pkgerrors.New(pkgerrors.CodeValidation, "month must use the YYYY-MM format")
		}
	}
	return start, start.AddDate(0, 1, 0), start.Format("2006-01"), nil
}
