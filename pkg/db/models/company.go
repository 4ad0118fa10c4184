package models

import "time"

// Company represents the tenant every record in the system belongs to.
// IDs are well-known strings so the default tenant can be provisioned
// lazily with a stable identifier.
type Company struct {
	ID        string    `gorm:"type:text;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
