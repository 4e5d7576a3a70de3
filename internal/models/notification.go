package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification represents a single domain event to fan out (PostgreSQL)
type Notification struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	ActionKey  string            `json:"action_key" gorm:"size:100;index"` // resource_created, comment_added, user_followed, ...
	IconKey    string            `json:"icon_key" gorm:"size:100"`
	IconColor  string            `json:"icon_color,omitempty" gorm:"-"` // derived at render time, never persisted
	ResourceID *uint             `json:"resource_id" gorm:"index"`
	UserID     *uint             `json:"user_id" gorm:"index"` // the actor who caused it, nil for system events
	Details    datatypes.JSONMap `json:"details"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index"`
}
