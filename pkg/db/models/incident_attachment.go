package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// IncidentAttachment is one photo slot on an incident. At most one row per
// (incident, kind) exists at any time.
type IncidentAttachment struct {
	ID         uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	IncidentID uuid.UUID            `gorm:"column:incident_id;type:uuid;not null;index;uniqueIndex:idx_incident_attachments_kind"`
	Kind       enums.AttachmentKind `gorm:"column:kind;type:text;not null;uniqueIndex:idx_incident_attachments_kind"`
	FileURL    string               `gorm:"column:file_url;not null"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate generates a UUID primary key if not set.
func (a *IncidentAttachment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
