package workers

import (
	"net/url"
	"regexp"
	"strings"

	pkgerrors "github.com/fortlifegroup/sst-backend/pkg/errors"
)

var dniRe = regexp.MustCompile(`^[0-9]{8,12}$`)

// validateCreate normalizes and checks a create payload. Fields are checked
// in a fixed order; the first failure wins.
func validateCreate(req *CreateWorkerRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	if len(req.FullName) < 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "full name must have at least 3 characters")
	}

	if req.DNI != nil {
		dni := strings.TrimSpace(*req.DNI)
		if dni == "" {
			req.DNI = nil
		} else {
			if !dniRe.MatchString(dni) {
				return pkgerrors.New(pkgerrors.CodeValidation, "dni must be 8 to 12 digits")
			}
			req.DNI = &dni
		}
	}

	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		req.Status = &status
		if _, err := defaultStatus(req.Status); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "status must be ACTIVE or INACTIVE")
		}
	}

	if req.InitialSSTTrainingPhotoURL != nil {
		photo := strings.TrimSpace(*req.InitialSSTTrainingPhotoURL)
		if photo == "" {
			req.InitialSSTTrainingPhotoURL = nil
		} else {
			if !isHTTPURL(photo) {
				return pkgerrors.New(pkgerrors.CodeValidation, "training photo must be a valid http or https URL")
			}
			req.InitialSSTTrainingPhotoURL = &photo
		}
	}

	if req.InitialSSTTrainingCompleted && req.InitialSSTTrainingPhotoURL == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "training photo is required when initial training is completed")
	}

	return nil
}

// validateUpdate applies the create rules only to fields present in the patch.
// A patch that sets completed=true while explicitly nulling the photo is
// rejected; completed=true with the photo key absent relies on the stored row.
func validateUpdate(req *UpdateWorkerRequest) error {
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if len(name) < 3 {
			return pkgerrors.New(pkgerrors.CodeValidation, "full name must have at least 3 characters")
		}
		req.FullName = &name
	}

	if req.DNI != nil {
		dni := strings.TrimSpace(*req.DNI)
		if dni == "" {
			req.DNI = nil
			req.DNIExplicitNull = true
		} else {
			if !dniRe.MatchString(dni) {
				return pkgerrors.New(pkgerrors.CodeValidation, "dni must be 8 to 12 digits")
			}
			req.DNI = &dni
		}
	}

	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		req.Status = &status
		if _, err := defaultStatus(req.Status); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "status must be ACTIVE or INACTIVE")
		}
	}

	if req.InitialSSTTrainingPhotoURL != nil {
		photo := strings.TrimSpace(*req.InitialSSTTrainingPhotoURL)
		if photo == "" {
			req.InitialSSTTrainingPhotoURL = nil
			req.PhotoURLExplicitNull = true
		} else {
			if !isHTTPURL(photo) {
				return pkgerrors.New(pkgerrors.CodeValidation, "training photo must be a valid http or https URL")
			}
			req.InitialSSTTrainingPhotoURL = &photo
		}
	}

	if req.InitialSSTTrainingCompleted != nil && *req.InitialSSTTrainingCompleted &&
		req.PhotoURLExplicitNull {
		return pkgerrors.New(pkgerrors.CodeValidation, "training photo is required when initial training is completed")
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
