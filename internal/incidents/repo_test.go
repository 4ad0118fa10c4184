package incidents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

func setupIncidentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	incidents := `
CREATE TABLE IF NOT EXISTS incident_records (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  worker_id TEXT NOT NULL,
  occurred_at DATETIME NOT NULL,
  activity_at_time TEXT NOT NULL,
  contract_type TEXT NOT NULL,
  hours_worked_before REAL,
  procedure_applied TEXT NOT NULL,
  worker_statement TEXT NOT NULL,
  company_observations TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	attachments := `
CREATE TABLE IF NOT EXISTS incident_attachments (
  id TEXT PRIMARY KEY,
  incident_id TEXT NOT NULL REFERENCES incident_records(id) ON DELETE CASCADE,
  kind TEXT NOT NULL,
  file_url TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (incident_id, kind)
);`
	require.NoError(t, db.Exec(incidents).Error)
	require.NoError(t, db.Exec(attachments).Error)
	return db
}

func newIncident(companyID string) *models.IncidentRecord {
	return &models.IncidentRecord{
		CompanyID:        companyID,
		WorkerID:         uuid.New(),
		OccurredAt:       time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		ActivityAtTime:   "soldadura de estructura",
		ContractType:     enums.ContractTypeIndefinite,
		ProcedureApplied: "se aplico el protocolo de primeros auxilios",
		WorkerStatement:  "resbale en la rampa de carga",
	}
}

func TestRepositorySaveWithAttachmentsCreates(t *testing.T) {
	db := setupIncidentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := uuid.NewString()

	saved, err := repo.SaveWithAttachments(ctx, newIncident(companyID), map[enums.AttachmentKind]string{
		enums.AttachmentKindAccident: "https://cdn.example.com/a.jpg",
		enums.AttachmentKindArea:     "https://cdn.example.com/b.jpg",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)
	require.Len(t, saved.Attachments, 2)

	found, err := repo.FindInCompany(ctx, companyID, saved.ID)
	require.NoError(t, err)
	require.Len(t, found.Attachments, 2)
	byKind := map[enums.AttachmentKind]string{}
	for _, att := range found.Attachments {
		byKind[att.Kind] = att.FileURL
	}
	assert.Equal(t, "https://cdn.example.com/a.jpg", byKind[enums.AttachmentKindAccident])
	assert.Equal(t, "https://cdn.example.com/b.jpg", byKind[enums.AttachmentKindArea])
}

func TestRepositorySaveWithAttachmentsReplacesSet(t *testing.T) {
	db := setupIncidentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := uuid.NewString()

	saved, err := repo.SaveWithAttachments(ctx, newIncident(companyID), map[enums.AttachmentKind]string{
		enums.AttachmentKindAccident: "https://cdn.example.com/a.jpg",
		enums.AttachmentKindArea:     "https://cdn.example.com/b.jpg",
	})
	require.NoError(t, err)

	// drop accident, keep area with a new url, add work-type
	saved, err = repo.SaveWithAttachments(ctx, saved, map[enums.AttachmentKind]string{
		enums.AttachmentKindArea:     "https://cdn.example.com/b2.jpg",
		enums.AttachmentKindWorkType: "https://cdn.example.com/c.jpg",
	})
	require.NoError(t, err)

	found, err := repo.FindInCompany(ctx, companyID, saved.ID)
	require.NoError(t, err)
	require.Len(t, found.Attachments, 2)
	byKind := map[enums.AttachmentKind]string{}
	for _, att := range found.Attachments {
		byKind[att.Kind] = att.FileURL
	}
	_, hasAccident := byKind[enums.AttachmentKindAccident]
	assert.False(t, hasAccident)
	assert.Equal(t, "https://cdn.example.com/b2.jpg", byKind[enums.AttachmentKindArea])
	assert.Equal(t, "https://cdn.example.com/c.jpg", byKind[enums.AttachmentKindWorkType])

	var total int64
	require.NoError(t, db.Model(&models.IncidentAttachment{}).
		Where("incident_id = ?", saved.ID).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestRepositoryFindInCompanyScopesTenant(t *testing.T) {
	db := setupIncidentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := uuid.NewString()

	saved, err := repo.SaveWithAttachments(ctx, newIncident(companyID), nil)
	require.NoError(t, err)

	_, err = repo.FindInCompany(ctx, uuid.NewString(), saved.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryDeleteCascadesAttachments(t *testing.T) {
	db := setupIncidentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := uuid.NewString()

	saved, err := repo.SaveWithAttachments(ctx, newIncident(companyID), map[enums.AttachmentKind]string{
		enums.AttachmentKindAccident: "https://cdn.example.com/a.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved))

	_, err = repo.FindInCompany(ctx, companyID, saved.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var total int64
	require.NoError(t, db.Model(&models.IncidentAttachment{}).
		Where("incident_id = ?", saved.ID).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}
