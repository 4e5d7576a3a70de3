package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// FollowerResource links a user to a resource they want notifications for
type FollowerResource struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FollowerID    uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_hash"`
	ResourceID    uint      `json:"resource_id"`
	ResourceClass string    `json:"resource_class" gorm:"size:255"`
	Hash          string    `json:"hash" gorm:"size:32;index;uniqueIndex:idx_follower_hash"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResourceHash returns the stable digest identifying a (resource, class) pair.
// Both the write and the lookup path must go through this function, otherwise
// relations silently fail to match.
func ResourceHash(resourceID uint, resourceClass string) string {
	raw := fmt.Sprintf("%s_%d", resourceClass, resourceID)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
