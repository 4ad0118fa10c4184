package enums

import "fmt"

// AttachmentKind classifies the photo slots an incident record carries.
type AttachmentKind string

const (
	AttachmentKindAccident AttachmentKind = "INCIDENT_ACCIDENT"
	AttachmentKindArea     AttachmentKind = "INCIDENT_AREA"
	AttachmentKindWorkType AttachmentKind = "INCIDENT_WORK_TYPE"
)

func (k AttachmentKind) String() string {
	return string(k)
}

func (k AttachmentKind) IsValid() bool {
	switch k {
	case AttachmentKindAccident, AttachmentKindArea, AttachmentKindWorkType:
		return true
	}
	return false
}

func ParseAttachmentKind(value string) (AttachmentKind, error) {
	k := AttachmentKind(value)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid attachment kind: %q", value)
	}
	return k, nil
}
