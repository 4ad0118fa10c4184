package incidents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
	"github.com/fortlifegroup/sst-backend/pkg/enums"
)

// attachmentKinds fixes the insert order so writes stay deterministic.
var attachmentKinds = []enums.AttachmentKind{
	enums.AttachmentKindAccident,
	enums.AttachmentKindArea,
	enums.AttachmentKindWorkType,
}

// Repository exposes incident persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an incident repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveWithAttachments writes the incident row and replaces its attachment
// set inside one transaction. A zero incident id means insert; otherwise the
// row is updated. All existing attachments are deleted and only the kinds
// present in photos are re-inserted, so an absent slot removes that kind.
func (r *Repository) SaveWithAttachments(ctx context.Context, incident *models.IncidentRecord, photos map[enums.AttachmentKind]string) (*models.IncidentRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if incident.ID == uuid.Nil {
			if err := tx.Omit("Attachments").Create(incident).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Attachments").Save(incident).Error; err != nil {
				return err
			}
			if err := tx.Where("incident_id = ?", incident.ID).
				Delete(&models.IncidentAttachment{}).Error; err != nil {
				return err
			}
		}

		incident.Attachments = incident.Attachments[:0]
		for _, kind := range attachmentKinds {
			fileURL, ok := photos[kind]
			if !ok {
				continue
			}
			att := models.IncidentAttachment{
				IncidentID: incident.ID,
				Kind:       kind,
				FileURL:    fileURL,
			}
			if err := tx.Create(&att).Error; err != nil {
				return err
			}
			incident.Attachments = append(incident.Attachments, att)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// FindInCompany returns the incident with its attachments only when it
// belongs to the tenant.
func (r *Repository) FindInCompany(ctx context.Context, companyID string, id uuid.UUID) (*models.IncidentRecord, error) {
	var row models.IncidentRecord
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		First(&row, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the tenant's incidents with attachments, newest first.
func (r *Repository) List(ctx context.Context, companyID string, limit int) ([]models.IncidentRecord, error) {
	var rows []models.IncidentRecord
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("company_id = ?", companyID).
		Order("occurred_at DESC, created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the incident row; attachments go with it via the cascade.
func (r *Repository) Delete(ctx context.Context, incident *models.IncidentRecord) error {
	return r.db.WithContext(ctx).Delete(incident).Error
}
