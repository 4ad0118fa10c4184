package incidents

import (
	"testing"
	"time"

	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func validIncidentRequest() IncidentRequest {
	return IncidentRequest{
		WorkerID:         "6f1e2ab8-6f5c-4a4d-9d35-0a6e1d2f3b4c",
		OccurredAt:       time.Date(2026, 1, 15, 14, 20, 0, 0, time.UTC),
		ActivityAtTime:   "Trabajo en altura",
		ContractType:     "INDEFINITE",
		ProcedureApplied: "Atencion en topico",
		WorkerStatement:  "Me resbale de la escalera",
	}
}

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

func TestValidateTextMinimums(t *testing.T) {
	req := validIncidentRequest()
	req.ActivityAtTime = " ab "
	_, err := validateRequest(&req)
	assertValidation(t, err, "activity at time must have at least 3 characters")

	req = validIncidentRequest()
	req.ProcedureApplied = "no"
	_, err = validateRequest(&req)
	assertValidation(t, err, "procedure applied must have at least 3 characters")

	req = validIncidentRequest()
	req.WorkerStatement = "caí"
	_, err = validateRequest(&req)
	assertValidation(t, err, "worker statement must have at least 5 characters")
}

func TestValidateContractType(t *testing.T) {
	req := validIncidentRequest()
	req.ContractType = "FREELANCE"
	_, err := validateRequest(&req)
	assertValidation(t, err, "contract type is not a recognized value")

	for _, ct := range []string{"INDEFINITE", "FIXED_TERM", "PART_TIME", "TRAINING", "CONTRACTOR"} {
		req = validIncidentRequest()
		req.ContractType = ct
		if _, err := validateRequest(&req); err != nil {
			t.Fatalf("contract type %s rejected: %v", ct, err)
		}
	}
}

func TestValidateHoursBoundaries(t *testing.T) {
	for _, hours := range []float64{0, 24, 7.5} {
		req := validIncidentRequest()
		req.HoursWorkedBefore = floatPtr(hours)
		if _, err := validateRequest(&req); err != nil {
			t.Fatalf("hours %v rejected: %v", hours, err)
		}
	}

	for _, hours := range []float64{-0.01, 24.01} {
		req := validIncidentRequest()
		req.HoursWorkedBefore = floatPtr(hours)
		_, err := validateRequest(&req)
		assertValidation(t, err, "hours worked before must be between 0 and 24")
	}
}

func TestValidateOccurredAtRequired(t *testing.T) {
	req := validIncidentRequest()
	req.OccurredAt = time.Time{}
	_, err := validateRequest(&req)
	assertValidation(t, err, "occurrence date is required")
}

func TestValidatePhotoSlots(t *testing.T) {
	req := validIncidentRequest()
	req.AccidentPhotoURL = strPtr("not-a-url")
	_, err := validateRequest(&req)
	assertValidation(t, err, "accident photo must be a valid http or https URL")

	req = validIncidentRequest()
	req.AreaPhotoURL = strPtr("ftp://cdn.example.com/a.jpg")
	_, err = validateRequest(&req)
	assertValidation(t, err, "area photo must be a valid http or https URL")

	req = validIncidentRequest()
	req.WorkTypePhotoURL = strPtr("javascript:alert(1)")
	_, err = validateRequest(&req)
	assertValidation(t, err, "work type photo must be a valid http or https URL")

	// blank slots normalize to nil instead of failing
	req = validIncidentRequest()
	req.AccidentPhotoURL = strPtr("   ")
	if _, err := validateRequest(&req); err != nil {
		t.Fatalf("blank photo rejected: %v", err)
	}
	if req.AccidentPhotoURL != nil {
		t.Error("expected blank photo slot to normalize to nil")
	}

	req = validIncidentRequest()
	req.AreaPhotoURL = strPtr("  https://cdn.example.com/area.jpg  ")
	if _, err := validateRequest(&req); err != nil {
		t.Fatalf("valid photo rejected: %v", err)
	}
	if req.AreaPhotoURL == nil || *req.AreaPhotoURL != "https://cdn.example.com/area.jpg" {
		t.Error("expected trimmed photo URL")
	}
}

func TestValidateWorkerID(t *testing.T) {
	for _, raw := range []string{"", "abc", "00000000-0000-0000-0000-000000000000"} {
		req := validIncidentRequest()
		req.WorkerID = raw
		_, err := validateRequest(&req)
		assertValidation(t, err, "a valid worker is required")
	}
}
