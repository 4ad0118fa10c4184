package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EppDelivery records personal protective equipment handed to a worker,
// with mandatory photo evidence.
type EppDelivery struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID        string    `gorm:"column:company_id;type:text;not null;index"`
	WorkerID         uuid.UUID `gorm:"column:worker_id;type:uuid;not null;index"`
	Equipment        string    `gorm:"column:equipment;not null"`
	Quantity         int       `gorm:"column:quantity;not null;default:1"`
	DeliveredAt      time.Time `gorm:"column:delivered_at;not null"`
	DeliveredBy      *string   `gorm:"column:delivered_by"`
	Notes            *string   `gorm:"column:notes"`
	DeliveryPhotoURL string    `gorm:"column:delivery_photo_url;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate generates a UUID primary key if not set.
func (d *EppDelivery) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
