package epp

import (
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// CreateDeliveryRequest carries the EPP delivery payload. DeliveredAt
// defaults to the current time and Quantity to 1 when absent.
type CreateDeliveryRequest struct {
	WorkerID         string     `json:"workerId"`
	Equipment        string     `json:"equipment"`
	Quantity         *int       `json:"quantity,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	DeliveredBy      *string    `json:"deliveredBy,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	DeliveryPhotoURL string     `json:"deliveryPhotoUrl"`
}

// DeliveryDTO is the wire shape of an EPP delivery row.
type DeliveryDTO struct {
	ID               string    `json:"id"`
	WorkerID         string    `json:"workerId"`
	Equipment        string    `json:"equipment"`
	Quantity         int       `json:"quantity"`
	DeliveredAt      time.Time `json:"deliveredAt"`
	DeliveredBy      *string   `json:"deliveredBy,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	DeliveryPhotoURL string    `json:"deliveryPhotoUrl"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToDTO shapes a delivery model for responses.
func ToDTO(d *models.EppDelivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               d.ID.String(),
		WorkerID:         d.WorkerID.String(),
		Equipment:        d.Equipment,
		Quantity:         d.Quantity,
		DeliveredAt:      d.DeliveredAt,
		DeliveredBy:      d.DeliveredBy,
		Notes:            d.Notes,
		DeliveryPhotoURL: d.DeliveryPhotoURL,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDTOs shapes a slice of delivery rows.
func ToDTOs(rows []models.EppDelivery) []DeliveryDTO {
	out := make([]DeliveryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}
