package enums

import "fmt"

// UploadKind names the categories of evidence photos clients may upload.
// Each kind maps to a folder segment under the tenant's media tree.
type UploadKind string

const (
	UploadKindIncidentAccident UploadKind = "incident_accident"
	UploadKindIncidentArea     UploadKind = "incident_area"
	UploadKindIncidentWorkType UploadKind = "incident_work_type"
	UploadKindEPPDelivery      UploadKind = "epp_delivery"
	UploadKindWorkerTraining   UploadKind = "worker_training"
)

// Every kind lives under the tenant's incidents/ media subtree, including
// EPP and training evidence.
var uploadKindFolders = map[UploadKind]string{
	UploadKindIncidentAccident: "incidents/accident",
	UploadKindIncidentArea:     "incidents/area",
	UploadKindIncidentWorkType: "incidents/work-type",
	UploadKindEPPDelivery:      "incidents/epp-delivery",
	UploadKindWorkerTraining:   "incidents/worker-training",
}

func (k UploadKind) String() string {
	return string(k)
}

func (k UploadKind) IsValid() bool {
	_, ok := uploadKindFolders[k]
	return ok
}

// Folder returns the folder segment for the kind, relative to the tenant root.
func (k UploadKind) Folder() string {
	return uploadKindFolders[k]
}

func ParseUploadKind(value string) (UploadKind, error) {
	k := UploadKind(value)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid upload kind: %q", value)
	}
	return k, nil
}
