package passwordreset

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fortlifegroup/sst-backend/internal/users"
	"github.com/fortlifegroup/sst-backend/pkg/db/models"
)

// Repository exposes reset token persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reset token repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DeleteStale removes expired or already-used tokens for any email, keeping
// the table bounded.
func (r *Repository) DeleteStale(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&models.PasswordResetToken{}).Error
}

// Create inserts a token row.
func (r *Repository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByHash returns the token row matching the digest.
func (r *Repository) FindByHash(ctx context.Context, digest string) (*models.PasswordResetToken, error) {
	var row models.PasswordResetToken
	if err := r.db.WithContext(ctx).
		First(&row, "token_hash = ?", digest).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Consume finalizes a reset inside one transaction: the user's password hash
// is replaced, the token is marked used, and every other outstanding token
// for the email is deleted.
func (r *Repository) Consume(ctx context.Context, token *models.PasswordResetToken, passwordHash string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := users.UpdatePasswordHashByEmail(tx, token.Email, passwordHash); err != nil {
			return err
		}
		if err := tx.Model(&models.PasswordResetToken{}).
			Where("id = ?", token.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Where("email = ? AND id <> ?", token.Email, token.ID).
			Delete(&models.PasswordResetToken{}).Error
	})
}
