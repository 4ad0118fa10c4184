package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

func setupWorkersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	companies := `
CREATE TABLE IF NOT EXISTS companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	workers := `
CREATE TABLE IF NOT EXISTS workers (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  worker_code INTEGER NOT NULL,
  full_name TEXT NOT NULL,
  dni TEXT,
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  initial_sst_training_completed INTEGER NOT NULL DEFAULT 0,
  initial_sst_training_date DATETIME,
  training_photo_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(companies).Error)
	require.NoError(t, db.Exec(workers).Error)
	return db
}

func newCompany(t *testing.T, db *gorm.DB) string {
	t.Helper()

	company := &models.Company{ID: uuid.NewString(), Name: "FortLife Group"}
	require.NoError(t, db.Create(company).Error)
	return company.ID
}

func newWorker(companyID, name string, dni *string) *models.Worker {
	return &models.Worker{
		CompanyID: companyID,
		FullName:  name,
		DNI:       dni,
		Status:    enums.WorkerStatusActive,
	}
}

func TestRepositoryCreateWithNextCodeSequential(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := newCompany(t, db)

	for want := 1; want <= 3; want++ {
		created, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Juan Perez", nil))
		require.NoError(t, err)
		assert.Equal(t, want, created.WorkerCode)
		assert.NotEqual(t, uuid.Nil, created.ID)
	}
}

func TestRepositoryCreateWithNextCodeCodesArePerCompany(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	first := newCompany(t, db)
	second := newCompany(t, db)

	a, err := repo.CreateWithNextCode(ctx, newWorker(first, "Juan Perez", nil))
	require.NoError(t, err)
	b, err := repo.CreateWithNextCode(ctx, newWorker(second, "Maria Lopez", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, a.WorkerCode)
	assert.Equal(t, 1, b.WorkerCode)
}

func TestRepositoryCreateWithNextCodeDuplicateDNI(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := newCompany(t, db)
	dni := "12345678"

	_, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Juan Perez", &dni))
	require.NoError(t, err)

	_, err = repo.CreateWithNextCode(ctx, newWorker(companyID, "Pedro Gomez", &dni))
	require.ErrorIs(t, err, ErrDuplicateDNI)

	// the failed insert must not leave a row or burn a code
	rows, err := repo.List(ctx, companyID, 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	next, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Pedro Gomez", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, next.WorkerCode)

	// the same dni in another tenant is fine
	other := newCompany(t, db)
	_, err = repo.CreateWithNextCode(ctx, newWorker(other, "Ana Torres", &dni))
	require.NoError(t, err)
}

func TestRepositoryFindInCompanyScopesTenant(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := newCompany(t, db)
	other := newCompany(t, db)

	created, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Juan Perez", nil))
	require.NoError(t, err)

	found, err := repo.FindInCompany(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindInCompany(ctx, other, created.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryDNITakenByOther(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := newCompany(t, db)
	dni := "87654321"

	created, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Juan Perez", &dni))
	require.NoError(t, err)

	// the holder itself is excluded
	taken, err := repo.DNITakenByOther(ctx, companyID, dni, created.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.DNITakenByOther(ctx, companyID, dni, uuid.New())
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestRepositoryUpdatePersistsClearedFields(t *testing.T) {
	db := setupWorkersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	companyID := newCompany(t, db)
	dni := "12345678"

	created, err := repo.CreateWithNextCode(ctx, newWorker(companyID, "Juan Perez", &dni))
	require.NoError(t, err)

	created.DNI = nil
	require.NoError(t, repo.Update(ctx, created))

	found, err := repo.FindInCompany(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.DNI)
}
