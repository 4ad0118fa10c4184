package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestInitMigrationCoversSchema(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("migrations", "00001_init.sql"))
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	sql := string(b)

	for _, table := range []string{
		"companies", "users", "password_reset_tokens", "workers",
		"epp_deliveries", "audit_records", "incident_records", "incident_attachments",
	} {
		if !strings.Contains(sql, "CREATE TABLE "+table) {
			t.Errorf("missing CREATE TABLE %s", table)
		}
	}

	for _, index := range []string{
		"idx_workers_company_code",
		"idx_workers_company_dni",
		"idx_incident_attachments_kind",
		"idx_password_reset_tokens_hash",
	} {
		if !strings.Contains(sql, index) {
			t.Errorf("missing index %s", index)
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Worker Photos!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_worker_photos.sql") {
		t.Errorf("unexpected filename: %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Errorf("validate created migration: %v", err)
	}

	if _, err := CreateSQLMigration(dir, ""); err == nil {
		t.Error("expected error for empty name")
	}
}
