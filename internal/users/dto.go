package users

import (
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// ProfileDTO is the wire shape of a user account. Password hashes never
// leave the service layer.
type ProfileDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CompanyID   *string    `json:"companyId,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UpdateProfileRequest carries the partial profile patch.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
}

// ToProfileDTO shapes a user model for responses.
func ToProfileDTO(user *models.User) ProfileDTO {
	return ProfileDTO{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		CompanyID:   user.CompanyID,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
